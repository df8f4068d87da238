package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"feder/internal/deliverylogs/models"
)

var importLogsCmd = &cobra.Command{
	Use:   "import-logs <file>",
	Short: "Import delivery log rows from a JSON array or NDJSON file",
	Long:  "Reads provider delivery rows and attaches them to cases.\nUse - to read from stdin.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportLogs,
}

func runImportLogs(cmd *cobra.Command, args []string) error {
	var src io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()
		src = f
	}
	rows, err := decodeRows(src)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Services.Logs.Import(ctx, rows)
	if result != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "saved: %d\nskipped: %d\n", result.Saved, result.Skipped)
	}
	return err
}

// decodeRows accepts either one JSON array or one JSON object per line.
func decodeRows(r io.Reader) ([]models.Row, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read rows: %w", err)
	}

	dec := json.NewDecoder(br)
	if first == '[' {
		var rows []models.Row
		if err := dec.Decode(&rows); err != nil {
			return nil, fmt.Errorf("decode JSON array: %w", err)
		}
		return rows, nil
	}

	var rows []models.Row
	for line := 1; ; line++ {
		var row models.Row
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				return rows, nil
			}
			return nil, fmt.Errorf("decode row %d: %w", line, err)
		}
		rows = append(rows, row)
	}
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}
