package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "nested", "appbrechas.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestLoadLogs(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	latest, err := st.LatestLoadLog()
	if err != nil || latest != nil {
		t.Fatalf("empty store: latest=%v err=%v", latest, err)
	}

	first, err := st.CreateLoadLog(LoadLog{GapSource: "a.csv", CatalogSource: "c.csv", GapRows: 3})
	if err != nil {
		t.Fatalf("CreateLoadLog: %v", err)
	}
	if first == "" {
		t.Fatalf("expected generated id")
	}
	second, err := st.CreateLoadLog(LoadLog{
		GapSource:     "b.csv",
		CatalogSource: "c.csv",
		Status:        LoadStatusFailed,
		ErrorMessage:  "boom",
	})
	if err != nil {
		t.Fatalf("CreateLoadLog: %v", err)
	}

	latest, err = st.LatestLoadLog()
	if err != nil {
		t.Fatalf("LatestLoadLog: %v", err)
	}
	if latest.ID != second || latest.Status != LoadStatusFailed || latest.ErrorMessage != "boom" {
		t.Fatalf("unexpected latest: %+v", latest)
	}

	logs, err := st.ListLoadLogs(10)
	if err != nil {
		t.Fatalf("ListLoadLogs: %v", err)
	}
	if len(logs) != 2 || logs[1].ID != first || logs[1].GapRows != 3 || logs[1].Status != LoadStatusOK {
		t.Fatalf("unexpected logs: %+v", logs)
	}
}

func TestExportLogs(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	for _, id := range []string{"X1", "X1", "X2"} {
		if _, err := st.InsertExportLog(ExportLog{FacilityID: id, FileName: "report_" + id + ".xlsx", DetailRows: 2}); err != nil {
			t.Fatalf("InsertExportLog: %v", err)
		}
	}

	n, err := st.CountExports("X1")
	if err != nil || n != 2 {
		t.Fatalf("CountExports(X1)=%d err=%v", n, err)
	}
	n, err = st.CountExports("")
	if err != nil || n != 3 {
		t.Fatalf("CountExports()=%d err=%v", n, err)
	}

	logs, err := st.ListExportLogs(2)
	if err != nil {
		t.Fatalf("ListExportLogs: %v", err)
	}
	if len(logs) != 2 || logs[0].FacilityID != "X2" || logs[0].Channel != ChannelHTTP {
		t.Fatalf("unexpected logs: %+v", logs)
	}
}
