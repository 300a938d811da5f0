// Package dashboard turns a filtered working set of order records into the
// figures a purchasing dashboard displays.
//
// Summarize computes the headline metrics, the top-N supplier rankings, the
// categorical splits and the row table. It never fails: an empty working set
// yields zero totals and empty lists. RenderPage draws a summary as a single
// HTML page with go-echarts (three horizontal bar charts, two donut charts)
// followed by the order table.
//
// Records passed in are never modified.
package dashboard
