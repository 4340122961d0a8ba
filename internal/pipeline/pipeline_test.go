package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/jalur/internal/placement"
	"github.com/abhisek/jalur/internal/record"
	"github.com/abhisek/jalur/internal/table"
)

var fixedNow = func() time.Time { return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC) }

func schoolTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		[]string{"nama", "tgl_lahir", "kelas_terakhir", "status", "alasan_putus", "tunggakan", "alamat_kecamatan"},
		[][]string{
			{"BUDI", "2014-01-01", "4", "Putus Sekolah", "keluar karena biaya", "750.000", ""},
			{"Siti", "2012-06-01", "6", "Lulus", "", "", "Coblong"},
			{"Andi", "", "", "aktif", "", "", "Coblong"},
			{"Rina", "2014-01-01", "Kelas 3", "aktif", "", "0", "Sukajadi"},
			{"Dedi", "2013-01-01", "5", "cuti", "", "", "Sukajadi"},
			{"Eko", "2007-01-01", "8", "", "drop out karena sakit", "Rp 2.500.000", "Coblong"},
		},
	)
	require.NoError(t, err)
	return tbl
}

func newProcessor(t *testing.T, opts Options) *Processor {
	t.Helper()
	opts.Now = fixedNow
	p, err := NewProcessor(opts)
	require.NoError(t, err)
	return p
}

func TestProcess(t *testing.T) {
	p := newProcessor(t, Options{})
	res, err := p.Process(context.Background(), schoolTable(t))
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "school", res.Profile)
	assert.Equal(t, "standard", res.Rules)
	assert.Contains(t, res.Missing, record.FieldSchoolEntryDate)

	want := []placement.MessageID{
		placement.MsgNearestSchoolSD,
		placement.MsgContinueSMP,
		placement.MsgInsufficientData,
		placement.MsgStayRegular,
		placement.MsgStatusUnclear,
		placement.MsgInclusiveSchool,
	}
	require.Len(t, res.Rows, len(want))
	for i, id := range want {
		assert.Equal(t, id, res.Rows[i].Recommendation.ID, "row %d", i)
	}

	budi := res.Rows[0].Record
	assert.Equal(t, "Budi", budi.Name)
	assert.Equal(t, record.ReasonEconomic, budi.Reason)
	assert.Equal(t, 10.0, *budi.Age)

	eko := res.Rows[5].Record
	assert.True(t, eko.StatusInferred)
	assert.Equal(t, record.StatusDropped, eko.Status)
	assert.Equal(t, record.ArrearsHigh, eko.ArrearsBracket)
}

func TestProcess_Summary(t *testing.T) {
	res, err := newProcessor(t, Options{}).Process(context.Background(), schoolTable(t))
	require.NoError(t, err)

	s := res.Summary
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 2, s.Dropouts)
	assert.InDelta(t, 2.0/6.0, s.DropoutRate, 1e-9)
	assert.Equal(t, 3_250_000.0, s.TotalArrears)
	assert.Equal(t, 2, s.NeedsReview)
	assert.Equal(t, 1, s.StatusInferred)
	assert.Equal(t, map[string]int{"active": 2, "graduated": 1, "dropped": 2, "unknown": 1}, s.ByStatus)
	assert.Equal(t, map[string]int{"economic": 1, "health": 1}, s.DropoutReasons)
	assert.Equal(t, map[string]int{UnknownDistrict: 1, "Coblong": 1}, s.DropoutsByDistrict)
}

func TestProcess_LocaleAndRules(t *testing.T) {
	p := newProcessor(t, Options{Rules: "extended", Locale: placement.LocaleEN})
	res, err := p.Process(context.Background(), schoolTable(t))
	require.NoError(t, err)
	assert.Equal(t, "extended", res.Rules)
	assert.Equal(t, "Remain in regular school", res.Rows[3].Recommendation.Text)
}

func TestProcess_WorkerCountDoesNotChangeOutput(t *testing.T) {
	base := schoolTable(t)
	var rows [][]string
	for i := 0; i < 50; i++ {
		for _, r := range base.Rows {
			row := append([]string(nil), r...)
			row[0] = fmt.Sprintf("%s %d", r[0], i)
			rows = append(rows, row)
		}
	}
	big, err := table.New(base.Header, rows)
	require.NoError(t, err)

	seq, err := newProcessor(t, Options{Workers: 1}).Process(context.Background(), big)
	require.NoError(t, err)
	for _, w := range []int{2, 4, 16} {
		par, err := newProcessor(t, Options{Workers: w}).Process(context.Background(), big)
		require.NoError(t, err)
		assert.Equal(t, seq.Rows, par.Rows, "workers=%d", w)
		assert.Equal(t, seq.Summary, par.Summary, "workers=%d", w)
	}
}

func TestProcess_WorkersShareFoldingSafely(t *testing.T) {
	header := []string{"nama", "tgl_lahir", "kelas_terakhir", "status", "alasan_putus", "tunggakan", "alamat_kecamatan"}
	names := []string{"JOSÉ ÁLVAREZ", "ñoman ayu", "ÉLISE", "Dédi Kurniawan"}
	reasons := []string{"Ékonomi keluarga", "SAKÍT parah", "pindah rumáh", "menikah díni"}
	var rows [][]string
	for i := 0; i < 2000; i++ {
		rows = append(rows, []string{
			fmt.Sprintf("%s %d", names[i%len(names)], i),
			"2012-03-03",
			"5",
			"Putus Sekolah",
			reasons[i%len(reasons)],
			"Rp 1.250.000",
			"Coblong",
		})
	}
	big, err := table.New(header, rows)
	require.NoError(t, err)

	seq, err := newProcessor(t, Options{Workers: 1}).Process(context.Background(), big)
	require.NoError(t, err)
	par, err := newProcessor(t, Options{Workers: 8}).Process(context.Background(), big)
	require.NoError(t, err)
	require.Equal(t, seq.Rows, par.Rows)
	assert.Equal(t, "José Álvarez 0", par.Rows[0].Record.Name)
	assert.Equal(t, record.ReasonEconomic, par.Rows[0].Record.Reason)
	assert.Equal(t, record.ReasonHealth, par.Rows[1].Record.Reason)
}

func TestProcess_ReadsClockOnce(t *testing.T) {
	var calls atomic.Int32
	p, err := NewProcessor(Options{Workers: 4})
	require.NoError(t, err)
	start := time.Date(2024, time.January, 1, 23, 59, 59, 0, time.UTC)
	p.Normalizer.Now = func() time.Time {
		n := calls.Add(1)
		return start.Add(time.Duration(n-1) * 24 * time.Hour)
	}

	res, err := p.Process(context.Background(), schoolTable(t))
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())

	want := p.Normalizer.NormalizeAt(record.Raw{record.FieldBirthDate: "2014-01-01"}, start)
	require.NotNil(t, res.Rows[0].Record.Age)
	assert.Equal(t, *want.Age, *res.Rows[0].Record.Age)
	assert.Equal(t, *res.Rows[0].Record.Age, *res.Rows[3].Record.Age)
}

func TestProcess_Idempotent(t *testing.T) {
	p := newProcessor(t, Options{})
	a, err := p.Process(context.Background(), schoolTable(t))
	require.NoError(t, err)
	b, err := p.Process(context.Background(), schoolTable(t))
	require.NoError(t, err)
	assert.Equal(t, a.Rows, b.Rows)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestProcess_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, w := range []int{1, 4} {
		_, err := newProcessor(t, Options{Workers: w}).Process(ctx, schoolTable(t))
		assert.ErrorIs(t, err, context.Canceled, "workers=%d", w)
	}
}

func TestProcess_UnknownProfile(t *testing.T) {
	_, err := NewProcessor(Options{Profile: "kelurahan"})
	assert.Error(t, err)
}

func TestProcess_LogsRun(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := newProcessor(t, Options{Logger: zap.New(core)})
	res, err := p.Process(context.Background(), schoolTable(t))
	require.NoError(t, err)

	entries := logs.FilterMessage("run complete").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, res.RunID, fields["run_id"])
	assert.Equal(t, "school", fields["profile"])
	assert.Equal(t, int64(6), fields["rows"])
}

func TestAnnotate(t *testing.T) {
	tbl := schoolTable(t)
	res, err := newProcessor(t, Options{}).Process(context.Background(), tbl)
	require.NoError(t, err)
	require.NoError(t, Annotate(tbl, res))

	// status is overwritten in place; the other columns are appended.
	assert.Equal(t, 3, tbl.Column(ColStatus))
	assert.Equal(t, 7+len(OutputColumns())-1, len(tbl.Header))

	get := func(row int, col string) string { return tbl.Rows[row][tbl.Column(col)] }
	assert.Equal(t, "dropped", get(0, ColStatus))
	assert.Equal(t, "10.0", get(0, ColAge))
	assert.Equal(t, "", get(0, ColEntryAge))
	assert.Equal(t, "4", get(0, ColGradeLevel))
	assert.Equal(t, "economic", get(0, ColReasonCategory))
	assert.Equal(t, "750000", get(0, ColArrears))
	assert.Equal(t, "moderate", get(0, ColArrearsBracket))
	assert.Equal(t, "1", get(0, ColIsDropout))
	assert.Equal(t, "nearest-school-sd", get(0, ColRecommendationID))
	assert.NotEmpty(t, get(0, ColRecommendation))

	assert.Equal(t, "", get(2, ColAge))
	assert.Equal(t, "", get(2, ColGradeLevel))
	assert.Equal(t, "0", get(2, ColIsDropout))
	assert.Equal(t, "unknown", get(4, ColStatus))
}

func TestAnnotate_IsRepeatable(t *testing.T) {
	tbl := schoolTable(t)
	p := newProcessor(t, Options{})
	res, err := p.Process(context.Background(), tbl)
	require.NoError(t, err)
	require.NoError(t, Annotate(tbl, res))
	width := len(tbl.Header)
	first := fmt.Sprint(tbl.Rows)

	require.NoError(t, Annotate(tbl, res))
	assert.Equal(t, width, len(tbl.Header))
	assert.Equal(t, first, fmt.Sprint(tbl.Rows))
}

func TestAnnotate_LengthMismatch(t *testing.T) {
	tbl := schoolTable(t)
	assert.Error(t, Annotate(tbl, &Result{}))
}

func TestRanked(t *testing.T) {
	got := Ranked(map[string]int{"b": 2, "a": 2, "c": 5})
	assert.Equal(t, []Count{{"c", 5}, {"a", 2}, {"b", 2}}, got)
}
