package tradelog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tradify-bot/internal/types"
)

var mu sync.Mutex

// journal timestamps use the session zone so daily files roll over with
// the trading day.
var zone = time.FixedZone("UTC+3", 3*3600)

// OrderEntry records one submitted order outcome.
type OrderEntry struct {
	Time, Symbol, Side, OrderID, Reason string
	Volume                              float64
	Price                               float64
	Retcode                             int
	Err                                 string `json:",omitempty"`
}

// DecisionEntry records the single action a cycle produced.
type DecisionEntry struct {
	Time      string
	Action    string
	Direction string
	Symbols   []string
	Reason    string
	Signals   int
}

func logDir() string {
	if v := os.Getenv("TRADER_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func dailyFilepath(t time.Time) string {
	d := t.In(zone).Format("2006-01-02")
	return filepath.Join(logDir(), d+".txt")
}

func decisionsFilepath(t time.Time) string {
	d := t.In(zone).Format("2006-01-02")
	return filepath.Join(logDir(), "decisions", d+".txt")
}

// AppendOrder writes one order result to today's journal.
func AppendOrder(r types.OrderResult, reason string) error {
	e := OrderEntry{
		Symbol:  r.Symbol,
		Side:    string(r.Side),
		OrderID: r.OrderID,
		Reason:  reason,
		Volume:  r.Volume,
		Price:   r.FilledPrice,
		Retcode: r.Retcode,
		Err:     r.Err,
	}
	now := time.Now().In(zone)
	e.Time = now.Format("2006-01-02 15:04:05")
	return appendJSON(dailyFilepath(now), e)
}

// AppendDecision writes one cycle decision to today's decision journal.
func AppendDecision(action types.TradingAction, signals int) error {
	now := time.Now().In(zone)
	e := DecisionEntry{
		Time:      now.Format("2006-01-02 15:04:05"),
		Action:    string(action.Kind),
		Direction: string(action.Direction),
		Symbols:   action.Symbols,
		Reason:    action.Reason,
		Signals:   signals,
	}
	return appendJSON(decisionsFilepath(now), e)
}

func appendJSON(path string, v any) error {
	mu.Lock()
	defer mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, _ := json.Marshal(v)
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips journal files older than retentionDays.
func CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	root := logDir()
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".txt" {
			return nil
		}
		info, er := os.Stat(p)
		if er != nil {
			return nil
		}
		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		if info.ModTime().Before(cutoff) {
			gz := p + ".gz"
			if _, e2 := os.Stat(gz); e2 == nil {
				_ = os.Remove(p)
				return nil
			}

			in, e3 := os.Open(p)
			if e3 != nil {
				return nil
			}
			defer in.Close()

			out, e4 := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
			if e4 != nil {
				return nil
			}
			gw := gzip.NewWriter(out)
			if _, e5 := io.Copy(gw, in); e5 == nil {
				_ = gw.Close()
				_ = out.Close()
				_ = os.Remove(p)
			} else {
				_ = gw.Close()
				_ = out.Close()
			}
		}
		return nil
	})
}
