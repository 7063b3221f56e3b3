package exporter

// ProgressEvent 导出进度
type ProgressEvent struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
}

// 导出阶段（界面直接展示）
const (
	StageFilter  = "Filtrando registros"
	StageSummary = "Calculando resumen"
	StageDetail  = "Ordenando detalle"
	StageSheetS  = "Hoja Summary escrita"
	StageSheetD  = "Hoja Detail escrita"
	StageWrite   = "Generando archivo"
	StageDone    = "Listo"
)

// progressReporter 百分比限制在 [0,100]，只在百分比增长时回调
type progressReporter struct {
	fn   func(ProgressEvent)
	last int
}

func newProgressReporter(fn func(ProgressEvent)) *progressReporter {
	return &progressReporter{fn: fn, last: -1}
}

func (p *progressReporter) report(percent int, stage string) {
	if p == nil || p.fn == nil {
		return
	}
	percent = min(max(percent, 0), 100)
	if percent <= p.last {
		return
	}
	p.last = percent
	p.fn(ProgressEvent{Percent: percent, Stage: stage})
}
