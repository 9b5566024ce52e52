package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// PrintShareCode writes a share code on its own line.
func PrintShareCode(code string, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, code)
		return err
	}, "Wrote share code")
}

// PrintShareData writes a decoded share payload. It is always JSON.
func PrintShareData(data schema.ShareData, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, data)
	}, "Wrote JSON")
}
