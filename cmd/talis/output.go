package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/talis/internal/config"
	"github.com/KirkDiggler/talis/internal/notify"
)

// printer writes command results in the configured format
type printer struct {
	w      io.Writer
	format string
}

func (a *app) printer(w io.Writer) *printer {
	return &printer{w: w, format: a.cfg.Output}
}

// print writes v as json or yaml, or calls text for the text format
func (p *printer) print(v any, text func(w io.Writer)) error {
	switch p.format {
	case config.OutputJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		if text == nil {
			enc := yaml.NewEncoder(p.w)
			if err := enc.Encode(v); err != nil {
				return err
			}
			return enc.Close()
		}
		text(p.w)
		return nil
	}
}

// notices prints pending corruption notices in text mode. Structured output
// carries them in the payload instead.
func (p *printer) notices(notices []notify.Notice) {
	if p.format != config.OutputText {
		return
	}
	for _, n := range notices {
		if n.Description != "" {
			fmt.Fprintf(p.w, "! %s: %s\n", n.Message, n.Description)
			continue
		}
		fmt.Fprintf(p.w, "! %s\n", n.Message)
	}
}
