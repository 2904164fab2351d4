package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/openfin/networth"
)

// SeriesMarkdown renders a bucketed value series as a markdown table. Each
// row shows the bucket's closing value, since for a balance series the last
// sample of a bucket supersedes the earlier ones.
func SeriesMarkdown(title, currency string, buckets []networth.Bucket) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s (%s)", title, currency))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Date", "Value"},
		Rows:   [][]string{},
	}
	for _, b := range buckets {
		table.Rows = append(table.Rows, []string{
			b.Date.String(),
			networth.M(b.Last(), currency).Round().String(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// FlowsMarkdown renders a bucketed cash-flow series. Flow buckets sum
// instead of closing: every delta inside the bucket counts.
func FlowsMarkdown(title, currency string, buckets []networth.Bucket) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s (%s)", title, currency))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Date", "Amount"},
		Rows:   [][]string{},
	}
	for _, b := range buckets {
		table.Rows = append(table.Rows, []string{
			b.Date.String(),
			networth.M(b.Sum(), currency).Round().SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
