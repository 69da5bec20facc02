package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-picode"
	"github.com/alnah/go-picode/internal/fileutil"
	"github.com/alnah/go-picode/internal/mdblocks"
)

// imageExt is the extension of every image written by the CLI.
const imageExt = ".png"

// renderJob is one image to produce.
type renderJob struct {
	Source     string // Display name: input path, or path:line for Markdown blocks
	OutputPath string
	Input      picode.Input

	filePath string // Source file rendered as a whole
	code     string // Code of a Markdown block
	language string // Info-string language of a Markdown block
}

// apply returns template with the job's source filled in. A Markdown
// block's own language takes precedence over the template's.
func (j renderJob) apply(template picode.Input) picode.Input {
	in := template
	in.Code = j.code
	in.FilePath = j.filePath
	if j.language != "" {
		in.Language = j.language
	}
	return in
}

// discoverJobs expands inputs into render jobs. Each input is one job, or
// one job per fenced code block with markdown set. outputs[i] names the
// image of job i; jobs beyond the list get a derived name.
func discoverJobs(ctx context.Context, inputs, outputs []string, outputDir string, markdown bool) ([]renderJob, error) {
	var jobs []renderJob
	for _, input := range inputs {
		if !markdown {
			jobs = append(jobs, renderJob{
				Source:     input,
				OutputPath: resolveOutputPath(input, outputDir),
				filePath:   input,
			})
			continue
		}

		blockJobs, err := markdownJobs(ctx, input, outputDir)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, blockJobs...)
	}

	if len(outputs) > len(jobs) {
		return nil, fmt.Errorf("%w: %d names for %d image(s)", ErrTooManyOutputs, len(outputs), len(jobs))
	}
	for i, name := range outputs {
		jobs[i].OutputPath = name
	}

	return jobs, nil
}

// markdownJobs returns one job per fenced code block of the Markdown file.
func markdownJobs(ctx context.Context, input, outputDir string) ([]renderJob, error) {
	src, err := os.ReadFile(input) // #nosec G304 -- user-provided input path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	blocks, err := mdblocks.Extract(ctx, src)
	if err != nil {
		return nil, err
	}

	jobs := make([]renderJob, 0, len(blocks))
	for _, b := range blocks {
		jobs = append(jobs, renderJob{
			Source:     fmt.Sprintf("%s:%d", input, b.Line),
			OutputPath: blockOutputPath(input, outputDir, b.Index),
			code:       b.Code,
			language:   b.Language,
		})
	}
	return jobs, nil
}

// resolveOutputPath derives the image path of an input: its extension is
// replaced by .png, and the file moves to outputDir when one is set.
func resolveOutputPath(inputPath, outputDir string) string {
	out := fileutil.ReplaceExt(inputPath, imageExt)
	if outputDir == "" {
		return out
	}
	return filepath.Join(outputDir, filepath.Base(out))
}

// blockOutputPath derives the image path of the n-th block of a Markdown
// file: <base>_<n>.png.
func blockOutputPath(inputPath, outputDir string, n int) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return resolveOutputPath(fmt.Sprintf("%s_%d%s", base, n, imageExt), outputDir)
}
