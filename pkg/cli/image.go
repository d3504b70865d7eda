// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/version-checker/pkg/imagetag"
	"github.com/NVIDIA/version-checker/pkg/vercmp"
)

// ImageComparison is the output of the image command.
type ImageComparison struct {
	Image1 string        `json:"image1" yaml:"image1"`
	Image2 string        `json:"image2" yaml:"image2"`
	Tag1   string        `json:"tag1,omitempty" yaml:"tag1,omitempty"`
	Tag2   string        `json:"tag2,omitempty" yaml:"tag2,omitempty"`
	Result vercmp.Result `json:"result" yaml:"result"`
	Reason string        `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func compareImages(image1, image2 string) *ImageComparison {
	out := &ImageComparison{
		Image1: image1,
		Image2: image2,
	}
	if ref, err := imagetag.Parse(image1); err == nil {
		out.Tag1 = ref.Tag
	}
	if ref, err := imagetag.Parse(image2); err == nil {
		out.Tag2 = ref.Tag
	}

	res, err := imagetag.CompareDetailed(image1, image2)
	out.Result = res
	if err != nil {
		out.Reason = err.Error()
	}
	return out
}

func imageCmd() *cli.Command {
	return &cli.Command{
		Name:      "image",
		Usage:     "Compare the version tags of two container images",
		ArgsUsage: "IMAGE1 IMAGE2",
		Description: `Compare the tags of two image references as versions. One leading "v" is
ignored, so nvcr.io/nvidia/gpu-operator:v25.3.0 compares as 25.3.0.

Examples:
  vercheck image nginx:1.25.3 nginx:1.25            # after
  vercheck image ghcr.io/org/app:v2 ghcr.io/org/app:2.0.0   # equal

References without a tag, digest-only references and non-numeric tags such
as "latest" produce error.`,
		Flags: []cli.Flag{
			failOnErrorFlag(),
			outputFlag(),
			formatFlag(formatText),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return fmt.Errorf("image requires exactly two arguments: %s, got %d", cmd.ArgsUsage, cmd.NArg())
			}

			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			out := compareImages(cmd.Args().Get(0), cmd.Args().Get(1))

			err = writeOutput(ctx, cmd, format, out, func(w io.Writer) error {
				_, werr := fmt.Fprintln(w, out.Result)
				return werr
			})
			if err != nil {
				return err
			}

			if cmd.Bool("fail-on-error") && out.Result == vercmp.Error {
				return fmt.Errorf("%w: %s", ErrComparisonFailed, out.Reason)
			}
			return nil
		},
	}
}
