package monitor

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/strata-data/fracture.report/internal/httputil"
)

const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// handleRoseChart renders a quick HTML bar histogram of the binned strike
// angles using go-echarts. This is a debugging-only endpoint (no auth) for
// eyeballing a dataset without generating the PNG rose. Query params match
// /api/rose.
func (ws *WebServer) handleRoseChart(w http.ResponseWriter, r *http.Request) {
	store, datasetID, ok := ws.loadDataset(w, r)
	if !ok {
		return
	}
	query, err := ws.roseQuery(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	bins, err := ws.binStore(store, query)
	if err != nil {
		httputil.Unprocessable(w, err.Error())
		return
	}

	x := make([]string, 0, len(bins))
	y := make([]opts.BarData, 0, len(bins))
	for _, b := range bins {
		x = append(x, fmt.Sprintf("%.0f-%.0f deg", b.Start, b.Start+b.Width))
		y = append(y, opts.BarData{Value: b.Radius})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Strike Rose", Theme: "dark", Width: "1200px", Height: "720px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{
			Title: "Strike Histogram",
			Subtitle: fmt.Sprintf("dataset=%s bins=%d bidirectional=%v radius=%s",
				datasetID, query.cfg.BinCount, query.cfg.Bidirectional, query.radiusMode),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).AddSeries("strike", y)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
