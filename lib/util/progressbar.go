package util

import (
	"github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
)

// Create new byte-denominated progress bar with custom options.
func NewByteProgressBar(p *mpb.Progress, total int64, name string) *mpb.Bar {
	return p.New(total,
		mpb.BarStyle().Lbound("[").Filler("=").Tip(">").Padding("-").Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name) + 2, C: decor.DidentRight}),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
			decor.CountersKibiByte("% .2f / % .2f", decor.WCSyncSpace),
		),
	)
}
