package ingest

import (
	"math"
	"strings"
	"testing"
)

func TestCSVIngestParse(t *testing.T) {
	input := "id,lon,lat,budget\n" +
		"1,103.8,1.30,500\n" +
		"2,103.81,1.31,inf\n" +
		"3,103.82,1.32,0\n"

	nodes, err := CSVIngest{}.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}

	if nodes[0].ID != 1 || nodes[0].Budget != 500 {
		t.Errorf("row 0 = %+v", nodes[0])
	}
	if !math.IsInf(nodes[1].Budget, 1) {
		t.Errorf("row 1 budget = %v, want +Inf", nodes[1].Budget)
	}
	if nodes[2].Budget != 0 {
		t.Errorf("row 2 budget = %v, want 0", nodes[2].Budget)
	}
}

func TestCSVIngestNoHeader(t *testing.T) {
	input := "1,103.8,1.30,500\n2,103.81,1.31,700\n"

	nodes, err := CSVIngest{}.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
}

func TestCSVIngestInfCaseInsensitive(t *testing.T) {
	input := "1,103.8,1.30,INF\n"
	nodes, err := CSVIngest{}.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !math.IsInf(nodes[0].Budget, 1) {
		t.Errorf("budget = %v, want +Inf", nodes[0].Budget)
	}
}

func TestCSVIngestRejectsBadID(t *testing.T) {
	input := "id,lon,lat,budget\nnotanumber,103.8,1.30,500\n"
	if _, err := (CSVIngest{}).Parse(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for invalid id")
	}
}

func TestCSVIngestRejectsBadBudget(t *testing.T) {
	input := "1,103.8,1.30,notanumber\n"
	if _, err := (CSVIngest{}).Parse(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for invalid budget")
	}
}

func TestCSVIngestEmpty(t *testing.T) {
	nodes, err := CSVIngest{}.Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if nodes != nil {
		t.Errorf("got %v, want nil", nodes)
	}
}
