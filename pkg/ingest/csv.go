// Package ingest implements the IngestAdapter collaborator: it turns a
// CSV of demand points into the node set BoruvkaEngine consumes.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"map_router/pkg/forest"
)

// infLiteral is the CSV token accepted in place of a numeric budget,
// meaning the node has no spending limit of its own (it is expected to
// reach the rest of its component through an anchor, or it simply has
// unlimited budget by data convention).
const infLiteral = "inf"

// CSVIngest reads rows of id,lon,lat,budget into forest.Node values.
// The first row is treated as a header and skipped if its first field
// does not parse as a number.
type CSVIngest struct{}

// Parse reads every row from r into a forest.Node slice, validating
// each row's coordinate and budget ranges with the same rules
// forest.Build applies so that a bad file is rejected before any
// spatial index is built. Duplicate ids are not checked here.
func (CSVIngest) Parse(r io.Reader) ([]forest.Node, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingest: reading csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	if _, err := strconv.ParseUint(rows[0][0], 10, 64); err != nil {
		rows = rows[1:]
	}

	nodes := make([]forest.Node, 0, len(rows))
	for i, row := range rows {
		n, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("ingest: row %d: %w", i, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func parseRow(row []string) (forest.Node, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(row[0]), 10, 64)
	if err != nil {
		return forest.Node{}, fmt.Errorf("invalid id %q: %w", row[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return forest.Node{}, fmt.Errorf("invalid lon %q: %w", row[1], err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return forest.Node{}, fmt.Errorf("invalid lat %q: %w", row[2], err)
	}

	budgetField := strings.TrimSpace(row[3])
	var budget float64
	if strings.EqualFold(budgetField, infLiteral) {
		budget = math.Inf(1)
	} else {
		budget, err = strconv.ParseFloat(budgetField, 64)
		if err != nil {
			return forest.Node{}, fmt.Errorf("invalid budget %q: %w", row[3], err)
		}
	}

	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return forest.Node{}, fmt.Errorf("lon %v out of range", lon)
	}
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return forest.Node{}, fmt.Errorf("lat %v out of range", lat)
	}
	if math.IsNaN(budget) || budget < 0 {
		return forest.Node{}, fmt.Errorf("budget %v must be non-negative or +Inf", budget)
	}

	return forest.Node{ID: id, Lon: lon, Lat: lat, Budget: budget}, nil
}
