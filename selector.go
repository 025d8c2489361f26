package assetupload

import (
	"sort"

	"github.com/input-output-hk/catalyst-forge-libs/assetupload/build"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/match"
)

// Asset is an asset selected for upload.
type Asset struct {
	Name     string
	Content  []byte
	ExistsAt string
}

// SelectEligible returns the assets whose names are not matched by exclude,
// sorted by name. Entries with an empty name or a nil asset are dropped.
func SelectEligible(assets map[string]build.Asset, exclude match.Matcher) []Asset {
	if exclude == nil {
		exclude = match.Nothing()
	}

	out := make([]Asset, 0, len(assets))
	for name, a := range assets {
		if name == "" || a == nil {
			continue
		}
		if exclude.Match(name) {
			continue
		}
		out = append(out, Asset{
			Name:     name,
			Content:  a.Source(),
			ExistsAt: a.ExistsAt(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
