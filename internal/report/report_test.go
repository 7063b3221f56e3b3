package report

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/martin-lopez25/appbrechas/internal/model"
)

func row(facility, code, class string, ideal, real, gap, surplus float64) *model.Row {
	return &model.Row{
		FacilityID:     facility,
		FacilityName:   "Unidad " + facility,
		Region:         "Chiapas",
		JobCode:        code,
		JobTitle:       "Puesto " + code,
		Classification: class,
		IdealTotal:     ideal,
		RealTotal:      real,
		Gap:            gap,
		Surplus:        surplus,
	}
}

func sampleTable() *model.Table {
	rows := []*model.Row{
		row("X1", "OP02", "Personal operativo", 4, 2, 2, 0),
		row("X1", "ME01", "Médicos especialistas", 10, 5, 5, 0),
		row("X2", "EN01", "Enfermería", 3, 1, 2, 0),
		row("X1", "EN03", "Enfermería", 2, 4, 0, 2),
		row("X1", "ME02", "Médicos especialistas", 3, 0, 3, 0),
		row("X1", "ZZ99", "", 1, 1, 0, 0),
		row("X1", "ME03", "Médicos especialistas", 1, 4, 0, 3),
	}
	return model.NewTable([]string{model.ColFacilityID, model.ColJobCode}, rows)
}

func TestFilterByFacility(t *testing.T) {
	t.Parallel()

	tbl := sampleTable()
	rows := FilterByFacility(tbl, "X1")
	if len(rows) != 6 {
		t.Fatalf("rows=%d, want 6", len(rows))
	}
	if rows[0].JobCode != "OP02" || rows[5].JobCode != "ME03" {
		t.Fatalf("load order not preserved")
	}
	if got := FilterByFacility(tbl, "UNKNOWN"); len(got) != 0 {
		t.Fatalf("unknown facility should be empty, got %d", len(got))
	}
}

func TestSummarizeByClassification_SortedAndConserved(t *testing.T) {
	t.Parallel()

	rows := FilterByFacility(sampleTable(), "X1")
	got := SummarizeByClassification(rows)

	want := []model.SummaryRow{
		{Classification: "", IdealTotal: 1, RealTotal: 1},
		{Classification: "Enfermería", IdealTotal: 2, RealTotal: 4, Surplus: 2},
		{Classification: "Médicos especialistas", IdealTotal: 14, RealTotal: 9, Gap: 8, Surplus: 3},
		{Classification: "Personal operativo", IdealTotal: 4, RealTotal: 2, Gap: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	var sumIdeal, sumReal, sumGap, sumSurplus float64
	for _, r := range rows {
		sumIdeal += r.IdealTotal
		sumReal += r.RealTotal
		sumGap += r.Gap
		sumSurplus += r.Surplus
	}
	var gIdeal, gReal, gGap, gSurplus float64
	for _, s := range got {
		gIdeal += s.IdealTotal
		gReal += s.RealTotal
		gGap += s.Gap
		gSurplus += s.Surplus
	}
	if sumIdeal != gIdeal || sumReal != gReal || sumGap != gGap || sumSurplus != gSurplus {
		t.Fatalf("group sums do not conserve subset totals")
	}
}

func TestSummarizeByClassification_Scenario(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable(nil, []*model.Row{
		row("X1", "OP02", "Personal operativo", 0, 0, 2, 0),
		row("X1", "ME01", "Médicos especialistas", 0, 0, 5, 0),
	})
	got := SummarizeByClassification(FilterByFacility(tbl, "X1"))
	if len(got) != 2 {
		t.Fatalf("groups=%d, want 2", len(got))
	}
	if got[0].Classification != "Médicos especialistas" || got[0].Gap != 5 {
		t.Fatalf("first group: %+v", got[0])
	}
	if got[1].Classification != "Personal operativo" || got[1].Gap != 2 {
		t.Fatalf("second group: %+v", got[1])
	}
}

func TestGroupByClassification_FirstCode(t *testing.T) {
	t.Parallel()

	groups := GroupByClassification(FilterByFacility(sampleTable(), "X1"))
	firsts := map[string]string{}
	for _, g := range groups {
		firsts[g.Classification] = g.FirstCode
	}
	want := map[string]string{
		"Personal operativo":    "OP02",
		"Médicos especialistas": "ME01",
		"Enfermería":            "EN03",
		"":                      "ZZ99",
	}
	if diff := cmp.Diff(want, firsts); diff != "" {
		t.Fatalf("first codes mismatch (-want +got):\n%s", diff)
	}
}

func TestTopN(t *testing.T) {
	t.Parallel()

	rows := FilterByFacility(sampleTable(), "X1")

	gap := TopN(rows, ByGap, 5, "")
	if len(gap) != 5 {
		t.Fatalf("len=%d, want 5", len(gap))
	}
	for i := 1; i < len(gap); i++ {
		if gap[i-1].Value < gap[i].Value {
			t.Fatalf("not descending at %d: %v < %v", i, gap[i-1].Value, gap[i].Value)
		}
	}
	// 并列（gap=0）按原行顺序：EN03, ZZ99, ME03
	codes := []string{}
	for _, r := range gap {
		codes = append(codes, r.JobCode)
	}
	if diff := cmp.Diff([]string{"ME01", "ME02", "OP02", "EN03", "ZZ99"}, codes); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	surplus := TopN(rows, BySurplus, 2, "")
	if len(surplus) != 2 || surplus[0].JobCode != "ME03" || surplus[1].JobCode != "EN03" {
		t.Fatalf("surplus ranking: %+v", surplus)
	}

	me := TopN(rows, ByGap, 5, PrefixSpecialist)
	if len(me) != 3 || me[0].JobCode != "ME01" || me[0].Value != 5 {
		t.Fatalf("ME ranking: %+v", me)
	}

	en := TopN(rows, ByGap, 5, PrefixNursing)
	if len(en) != 1 || en[0].JobCode != "EN03" {
		t.Fatalf("EN ranking: %+v", en)
	}

	if got := TopN(rows, ByGap, 0, ""); len(got) != 0 {
		t.Fatalf("n=0 should be empty")
	}
	if got := TopN(nil, ByGap, 5, ""); len(got) != 0 {
		t.Fatalf("empty subset should be empty")
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	rep, err := Build(sampleTable(), "X1", Options{Now: now})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rep.FacilityName != "Unidad X1" || rep.Region != "Chiapas" {
		t.Fatalf("header: %+v", rep)
	}
	if rep.AnalysisDate != "07/03/2025" {
		t.Fatalf("date=%q", rep.AnalysisDate)
	}
	if rep.RowCount != 6 {
		t.Fatalf("rowCount=%d", rep.RowCount)
	}
	if len(rep.TopGap.Rows) != DefaultTopN || len(rep.TopSpecialistGap.Rows) != 3 {
		t.Fatalf("rankings: gap=%d me=%d", len(rep.TopGap.Rows), len(rep.TopSpecialistGap.Rows))
	}
	if rep.TopSpecialistGap.Headers[1] != HeaderSpecialty || rep.TopSurplus.Headers[4] != HeaderSurplus {
		t.Fatalf("headers: %v %v", rep.TopSpecialistGap.Headers, rep.TopSurplus.Headers)
	}
}

func TestBuild_EmptyAndUnknown(t *testing.T) {
	t.Parallel()

	if _, err := Build(sampleTable(), "  ", Options{}); !errors.Is(err, ErrNoFacility) {
		t.Fatalf("want ErrNoFacility, got %v", err)
	}
	if _, err := Build(sampleTable(), "UNKNOWN", Options{}); !errors.Is(err, ErrFacilityNotFound) {
		t.Fatalf("want ErrFacilityNotFound, got %v", err)
	}
}

func TestCodePriority(t *testing.T) {
	t.Parallel()

	cases := map[string]int{"ME01": 0, "EN01": 1, "OP02": 2, "XME1": 2, "": 2}
	for code, want := range cases {
		if got := CodePriority(code); got != want {
			t.Fatalf("CodePriority(%q)=%d, want %d", code, got, want)
		}
	}
}
