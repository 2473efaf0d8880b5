package layers

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ik-hxr/cms-backend/internal/config"
	"github.com/ik-hxr/cms-backend/internal/messages"
)

// Finding is one verification problem in a layer archive.
type Finding struct {
	Layer   string
	Message string
}

func (f Finding) String() string {
	return f.Message
}

type archiveListing struct {
	files   []string
	missing bool
	err     error
}

// Verify checks each layer archive under root: every pinned package has a
// dist-info entry, no package pinned by another layer leaked in, and no
// non-metadata file appears in two archives. Archives are read concurrently;
// findings are reported in layer order.
func Verify(ctx context.Context, root string, layers []config.Layer) ([]Finding, error) {
	listings := make([]archiveListing, len(layers))
	g, ctx := errgroup.WithContext(ctx)
	for i, layer := range layers {
		path := filepath.Join(root, filepath.FromSlash(layer.Archive))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files, exists, err := listIfExists(path)
			listings[i] = archiveListing{files: files, missing: !exists && err == nil, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pinnedBy := make(map[string]string)
	for _, layer := range layers {
		for _, pkg := range layer.Packages {
			name := NormalizeName(pkg.Name)
			if _, seen := pinnedBy[name]; !seen {
				pinnedBy[name] = layer.Name
			}
		}
	}

	var findings []Finding
	fileOwner := make(map[string]string)
	for i, layer := range layers {
		listing := listings[i]
		switch {
		case listing.missing:
			findings = append(findings, Finding{Layer: layer.Name, Message: fmt.Sprintf(messages.LayersFindingMissingArchiveFmt, layer.Name, layer.Archive)})
			continue
		case listing.err != nil:
			findings = append(findings, Finding{Layer: layer.Name, Message: fmt.Sprintf(messages.LayersFindingUnreadableFmt, layer.Name, layer.Archive, listing.err)})
			continue
		}
		findings = append(findings, checkLayer(layer, listing.files, pinnedBy)...)

		for _, file := range listing.files {
			if isMetadataPath(file) {
				continue
			}
			if owner, seen := fileOwner[file]; seen {
				findings = append(findings, Finding{Layer: layer.Name, Message: fmt.Sprintf(messages.LayersFindingSharedFileFmt, layer.Name, file, owner)})
				continue
			}
			fileOwner[file] = layer.Name
		}
	}
	return findings, nil
}

func checkLayer(layer config.Layer, files []string, pinnedBy map[string]string) []Finding {
	present := distInfos(files)
	own := make(map[string]struct{}, len(layer.Packages))
	var findings []Finding
	for _, pkg := range layer.Packages {
		name := NormalizeName(pkg.Name)
		own[name] = struct{}{}
		if _, ok := present[distInfo{Name: name, Version: pkg.Version}]; !ok {
			findings = append(findings, Finding{Layer: layer.Name, Message: fmt.Sprintf(messages.LayersFindingMissingPackageFmt, layer.Name, pkg.Name, pkg.Version, DistInfoDir(pkg))})
		}
	}
	for _, info := range sortedDistInfos(present) {
		if _, mine := own[info.Name]; mine {
			continue
		}
		if owner, pinned := pinnedBy[info.Name]; pinned && owner != layer.Name {
			findings = append(findings, Finding{Layer: layer.Name, Message: fmt.Sprintf(messages.LayersFindingForeignPackageFmt, layer.Name, info.Name+"=="+info.Version, owner)})
		}
	}
	return findings
}

// distInfos returns the dist-info directories present in an archive listing.
func distInfos(files []string) map[distInfo]struct{} {
	out := make(map[distInfo]struct{})
	for _, file := range files {
		for _, segment := range strings.Split(file, "/") {
			if info, ok := parseDistInfo(segment); ok {
				out[info] = struct{}{}
				break
			}
		}
	}
	return out
}

func sortedDistInfos(set map[distInfo]struct{}) []distInfo {
	out := make([]distInfo, 0, len(set))
	for info := range set {
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b distInfo) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Version, b.Version))
	})
	return out
}

func isMetadataPath(file string) bool {
	return strings.Contains(file, ".dist-info/") || strings.Contains(file, "/__pycache__/")
}
