package main

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"git.sr.ht/~dvko/mdsite/markdown"
)

// converter turns the body of a content file into HTML.
type converter func(source []byte) (string, error)

var md = goldmark.New(
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
	goldmark.WithExtensions(extension.GFM, extension.Footnote))

func newConverter(engine string) (converter, error) {
	switch engine {
	case "", "builtin":
		return convertBuiltin, nil
	case "goldmark":
		return convertGoldmark, nil
	default:
		return nil, fmt.Errorf("unknown markdown engine: %s", engine)
	}
}

func convertBuiltin(source []byte) (string, error) {
	return markdown.RenderPage(string(source))
}

func convertGoldmark(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
