package pipeline

import (
	"fmt"
	"strings"

	"github.com/mincehq/mince/internal/core/domain"
)

// sidecarAggregator accumulates extracted comments into named sidecar
// assets. A sidecar is uniformly an ordered list of content chunks, one
// chunk per contributing source file, so appending never needs to care
// whether the asset "is already an aggregate".
type sidecarAggregator struct {
	chunks map[string][]string
}

func newSidecarAggregator() *sidecarAggregator {
	return &sidecarAggregator{chunks: make(map[string][]string)}
}

// Write appends one file's extracted comments to the sidecar with the
// given name and re-renders it into the compilation. A pre-existing plain
// asset under the same name is preserved as the first chunk; prior chunks
// from earlier files in the run are never clobbered.
func (s *sidecarAggregator) Write(comp *domain.Compilation, name string, extracted []string) {
	if _, ok := s.chunks[name]; !ok {
		if existing := comp.Asset(name); existing != nil && existing.Content != "" {
			s.chunks[name] = []string{strings.TrimRight(existing.Content, "\n")}
		}
	}

	s.chunks[name] = append(s.chunks[name], strings.Join(extracted, "\n\n"))

	comp.AddAsset(&domain.Asset{
		Name:    name,
		Content: strings.Join(s.chunks[name], "\n\n") + "\n",
	})
}

// sidecarName derives the sidecar asset name for one source file:
// the explicit filename, the filename function applied to the current
// file, or <sourceFile>.LICENSE.
func sidecarName(extract *ExtractOptions, source string) string {
	switch {
	case extract.Filename != "":
		return extract.Filename
	case extract.FilenameFunc != nil:
		return extract.FilenameFunc(source)
	default:
		return source + ".LICENSE"
	}
}

// bannerText computes the banner for one transformed file: the explicit
// text, the banner function applied to the sidecar name, or the default
// reference. An empty result (or DisableBanner) means no banner.
func bannerText(extract *ExtractOptions, sidecar string) string {
	switch {
	case extract.DisableBanner:
		return ""
	case extract.Banner != "":
		return extract.Banner
	case extract.BannerFunc != nil:
		return extract.BannerFunc(sidecar)
	default:
		return fmt.Sprintf("For license information please see %s", sidecar)
	}
}

// applyBanner prepends a leading comment block to transformed content,
// leaving the minified output unchanged after it.
func applyBanner(banner, content string) string {
	if banner == "" {
		return content
	}
	return "/*! " + banner + " */\n" + content
}
