package export

import (
	"fmt"
	"os"

	"github.com/ipcard-tools/ipcard/internal/model"
)

// WriteODSFile writes the ODS export to path. Returns a CLIError with
// ExitExportError when the target cannot be created or written.
func WriteODSFile(path string, rows []model.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return model.WrapCLIError(model.ExitExportError,
			fmt.Sprintf("cannot create spreadsheet file %s", path), err)
	}

	if err := WriteODS(f, rows); err != nil {
		_ = f.Close()
		return model.WrapCLIError(model.ExitExportError,
			fmt.Sprintf("failed to write spreadsheet %s", path), err)
	}

	if err := f.Close(); err != nil {
		return model.WrapCLIError(model.ExitExportError,
			fmt.Sprintf("failed to write spreadsheet %s", path), err)
	}
	return nil
}

// WriteLaTeXFile writes the LaTeX export to path. Returns a CLIError
// with ExitExportError when the target cannot be created or written.
func WriteLaTeXFile(path string, rows []model.Row, opts LaTeXOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return model.WrapCLIError(model.ExitExportError,
			fmt.Sprintf("cannot create LaTeX file %s", path), err)
	}

	if err := WriteLaTeX(f, rows, opts); err != nil {
		_ = f.Close()
		return model.WrapCLIError(model.ExitExportError,
			fmt.Sprintf("failed to write LaTeX file %s", path), err)
	}

	if err := f.Close(); err != nil {
		return model.WrapCLIError(model.ExitExportError,
			fmt.Sprintf("failed to write LaTeX file %s", path), err)
	}
	return nil
}
