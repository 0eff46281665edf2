package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Dashboard is the page shell. Chart data arrives through the datastar SSE
// endpoints; the page itself only declares the containers they patch.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, dashboardHTML)
		return err
	})
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>datalens</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"></script>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; background: #f8fafc; }
.modern-table { border-collapse: collapse; width: 100%; background: #fff; }
.modern-table th, .modern-table td { padding: 0.5rem 0.75rem; border-bottom: 1px solid #e2e8f0; text-align: left; }
code { background: #f1f5f9; padding: 0.1rem 0.3rem; border-radius: 3px; }
</style>
</head>
<body data-signals="{chartsData: [], rowCount: 0, datasets: {}}">
<h1>datalens</h1>
<div id="refresh-status"></div>
<div id="metrics-content">Select a dataset to load its metrics.</div>
<div id="charts-content"></div>
</body>
</html>`
