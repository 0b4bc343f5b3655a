package model

import "sort"

// DayData holds every work record for one calendar date. It is the unit of
// persistence (one JSON file per date) and the unit of undo snapshots.
type DayData struct {
	Date        Date                  `json:"date"`
	LastID      uint32                `json:"last_id"`
	WorkRecords map[uint32]WorkRecord `json:"work_records"`
}

func NewDayData(date Date) DayData {
	return DayData{Date: date, WorkRecords: make(map[uint32]WorkRecord)}
}

// AddRecord upserts by id. LastID never decreases and stays at or above
// every id ever inserted, so ids are not reused after deletion.
func (d *DayData) AddRecord(record WorkRecord) {
	if d.WorkRecords == nil {
		d.WorkRecords = make(map[uint32]WorkRecord)
	}
	if record.ID > d.LastID {
		d.LastID = record.ID
	}
	d.WorkRecords[record.ID] = record
}

func (d *DayData) RemoveRecord(id uint32) (WorkRecord, bool) {
	record, ok := d.WorkRecords[id]
	if ok {
		delete(d.WorkRecords, id)
	}
	return record, ok
}

func (d *DayData) Record(id uint32) (WorkRecord, bool) {
	record, ok := d.WorkRecords[id]
	return record, ok
}

func (d *DayData) NextID() uint32 {
	d.LastID++
	return d.LastID
}

// SortedRecords returns the records ordered by start time, ties broken by id
// so the order is stable across map iteration.
func (d *DayData) SortedRecords() []WorkRecord {
	records := make([]WorkRecord, 0, len(d.WorkRecords))
	for _, record := range d.WorkRecords {
		records = append(records, record)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Start == records[j].Start {
			return records[i].ID < records[j].ID
		}
		return records[i].Start.Before(records[j].Start)
	})
	return records
}

type NameTotal struct {
	Name         string
	TotalMinutes int
}

// GroupedTotals sums TotalMinutes per distinct record name, largest first.
func (d *DayData) GroupedTotals() []NameTotal {
	totals := make(map[string]int)
	for _, record := range d.WorkRecords {
		totals[record.Name] += record.TotalMinutes
	}
	result := make([]NameTotal, 0, len(totals))
	for name, total := range totals {
		result = append(result, NameTotal{Name: name, TotalMinutes: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalMinutes == result[j].TotalMinutes {
			return result[i].Name < result[j].Name
		}
		return result[i].TotalMinutes > result[j].TotalMinutes
	})
	return result
}

// TotalMinutes sums the durations of all records.
func (d *DayData) TotalMinutes() int {
	total := 0
	for _, record := range d.WorkRecords {
		total += record.TotalMinutes
	}
	return total
}

// Clone returns a deep copy safe to keep as an undo snapshot while the
// original keeps mutating.
func (d *DayData) Clone() DayData {
	copied := DayData{
		Date:        d.Date,
		LastID:      d.LastID,
		WorkRecords: make(map[uint32]WorkRecord, len(d.WorkRecords)),
	}
	for id, record := range d.WorkRecords {
		copied.WorkRecords[id] = record
	}
	return copied
}
