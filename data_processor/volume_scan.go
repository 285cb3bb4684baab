package data_processor

import (
	"fmt"

	"fundflow-quant/model"
)

// VolumeAnomaly 日线放量事件：某日成交量显著高于前 20 日均量。
type VolumeAnomaly struct {
	Code     string  `json:"code"`
	Date     string  `json:"date"`
	Close    float64 `json:"close"`
	Volume   float64 `json:"volume"`
	AvgVol   float64 `json:"avg_volume"`
	VolRatio float64 `json:"vol_ratio"`
}

// VolumeScanner 把候选股的日线灌进 DuckDB，用窗口函数扫描放量异动。
type VolumeScanner struct {
	duck *DuckDB
}

func NewVolumeScanner(d *DuckDB) *VolumeScanner {
	return &VolumeScanner{duck: d}
}

// LoadBars 装载一批个股的日线数据，每次调用重建表。
// 日线按最新在前存储，入库顺序不影响窗口函数（按日期排序）。
func (p *VolumeScanner) LoadBars(bars map[string][]model.DailyBar) error {
	_, err := p.duck.DB.Exec(`
		CREATE OR REPLACE TABLE daily_bar (
			code VARCHAR,
			date VARCHAR,
			close DOUBLE,
			volume DOUBLE
		)`)
	if err != nil {
		return fmt.Errorf("create table failed: %w", err)
	}

	tx, err := p.duck.DB.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO daily_bar (code, date, close, volume) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert failed: %w", err)
	}
	defer stmt.Close()

	for code, history := range bars {
		for _, b := range history {
			if b.Date == "" {
				continue
			}
			if _, err := stmt.Exec(code, b.Date, b.Close, b.Volume); err != nil {
				tx.Rollback()
				return fmt.Errorf("insert failed: %w", err)
			}
		}
	}
	return tx.Commit()
}

// ScanVolumeSpikes 用窗口函数找出量能突变日：
// 当日成交量 > spikeRatio × 前 20 日滚动均量，按放量倍数降序取前 limit 条。
func (p *VolumeScanner) ScanVolumeSpikes(spikeRatio float64, limit int) ([]VolumeAnomaly, error) {
	query := `
	WITH stats AS (
		SELECT
			code, date, close, volume,
			AVG(volume) OVER (
				PARTITION BY code ORDER BY date
				ROWS BETWEEN 20 PRECEDING AND 1 PRECEDING
			) AS roll_avg_vol
		FROM daily_bar
	)
	SELECT code, date, close, volume, roll_avg_vol
	FROM stats
	WHERE roll_avg_vol > 0 AND volume > ? * roll_avg_vol
	ORDER BY volume / roll_avg_vol DESC
	LIMIT ?;
	`

	rows, err := p.duck.DB.Query(query, spikeRatio, limit)
	if err != nil {
		return nil, fmt.Errorf("volume scan query failed: %w", err)
	}
	defer rows.Close()

	var events []VolumeAnomaly
	for rows.Next() {
		var e VolumeAnomaly
		if err := rows.Scan(&e.Code, &e.Date, &e.Close, &e.Volume, &e.AvgVol); err != nil {
			return nil, err
		}
		if e.AvgVol > 0 {
			e.VolRatio = e.Volume / e.AvgVol
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
