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

// Package imagetag compares container images by the version in their tags.
//
// References are parsed with github.com/distribution/reference, so short
// names are normalized ("nginx:1.25" is "docker.io/library/nginx:1.25") and
// an optional "oci://" scheme is accepted. The tag, minus one leading "v",
// is handed to vercmp:
//
//	imagetag.Compare("nvcr.io/nvidia/gpu-operator:v25.3.0", "nvcr.io/nvidia/gpu-operator:v24.9.2")
//	// vercmp.After
package imagetag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/distribution/reference"

	cnserrors "github.com/NVIDIA/version-checker/pkg/errors"
	"github.com/NVIDIA/version-checker/pkg/vercmp"
)

// URIScheme is the optional scheme prefix of OCI references.
const URIScheme = "oci://"

// ErrNoTag is returned for references without a tag, including digest-only ones.
var ErrNoTag = errors.New("image reference has no tag")

// Reference is a parsed image reference.
type Reference struct {
	// Registry is the registry host, e.g. "nvcr.io".
	Registry string
	// Repository is the path within the registry, e.g. "nvidia/gpu-operator".
	Repository string
	// Tag is the raw tag, e.g. "v25.3.0".
	Tag string
	// Version is Tag with one leading "v" or "V" removed.
	Version string
}

// String returns registry/repository:tag.
func (r *Reference) String() string {
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// Parse parses an image reference and extracts its tag. References that are
// not valid, or carry no tag, return a StructuredError with code
// INVALID_REQUEST; the latter also matches ErrNoTag.
func Parse(s string) (*Reference, error) {
	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(strings.TrimSpace(s), URIScheme))
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest, "invalid image reference", err,
			map[string]any{"reference": s})
	}

	tagged, ok := ref.(reference.Tagged)
	if !ok {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest, "invalid image reference", ErrNoTag,
			map[string]any{"reference": s})
	}

	return &Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
		Tag:        tagged.Tag(),
		Version:    trimVersionPrefix(tagged.Tag()),
	}, nil
}

func trimVersionPrefix(tag string) string {
	if len(tag) > 1 && (tag[0] == 'v' || tag[0] == 'V') {
		return tag[1:]
	}
	return tag
}

// Compare compares the tag versions of two image references. Unparseable
// references and non-numeric tags yield vercmp.Error; use CompareDetailed for
// the cause.
func Compare(ref1, ref2 string) vercmp.Result {
	r, _ := CompareDetailed(ref1, ref2)
	return r
}

// CompareDetailed is Compare that also returns why a comparison produced
// vercmp.Error. The repositories of the two references are not required to
// match.
func CompareDetailed(ref1, ref2 string) (vercmp.Result, error) {
	a, err := Parse(ref1)
	if err != nil {
		return vercmp.Error, err
	}
	b, err := Parse(ref2)
	if err != nil {
		return vercmp.Error, err
	}
	return vercmp.CompareDetailed(a.Version, b.Version)
}
