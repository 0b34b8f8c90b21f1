package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/syncvault/pkg/query"
	"tableflip.dev/syncvault/pkg/snippet"
)

// FilterOptions
type FilterOptions struct {
	Tag    string
	Type   string
	Device string
	Text   string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Tag, "tag", "t", "",
		"Only snippets with this exact tag.")
	cmd.Flags().StringVar(&o.Type, "type", "",
		"Only snippets of this type: text, code or link.")
	cmd.Flags().StringVarP(&o.Device, "device", "d", "",
		"Only snippets saved from this device id.")
	cmd.Flags().StringVarP(&o.Text, "search", "s", "",
		"Case-insensitive text matched against content, tags, device and type.")
}

// Filters validates the flag values.
func (o *FilterOptions) Filters() (query.Filters, error) {
	f := query.Filters{DeviceID: o.Device, Tag: o.Tag}
	if o.Type != "" {
		t, err := snippet.ParseType(o.Type)
		if err != nil {
			return query.Filters{}, err
		}
		f.Type = t
	}
	return f, nil
}
