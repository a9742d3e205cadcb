package utils

import "github.com/schollz/progressbar/v3"

// DescDownloading labels the source-fetch progress bar.
const DescDownloading = "Downloading"

// NewProgressBar creates a consistently styled progress bar. Pass -1 for
// unknown totals to get spinner mode.
func NewProgressBar(total int, description string) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts,
			progressbar.OptionShowIts(),
		)
	}

	return progressbar.NewOptions(total, opts...)
}
