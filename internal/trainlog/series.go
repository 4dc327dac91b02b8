package trainlog

// Series holds the records of one log file in parse order.
// Series 按解析顺序保存一个日志文件的记录。
type Series struct {
	Source  string
	Records []Record
}

func (s Series) Len() int { return len(s.Records) }

// Steps returns the step column.
func (s Series) Steps() []float64 {
	out := make([]float64, len(s.Records))
	for i, r := range s.Records {
		out[i] = float64(r.Step)
	}
	return out
}

// Losses returns the validation loss column.
func (s Series) Losses() []float64 {
	out := make([]float64, len(s.Records))
	for i, r := range s.Records {
		out[i] = r.ValLoss
	}
	return out
}

// CumulativeTimes returns the cumulative time column in milliseconds.
func (s Series) CumulativeTimes() []float64 {
	out := make([]float64, len(s.Records))
	for i, r := range s.Records {
		out[i] = r.CumulativeMs
	}
	return out
}

// Last returns the final record.
func (s Series) Last() (Record, bool) {
	if len(s.Records) == 0 {
		return Record{}, false
	}
	return s.Records[len(s.Records)-1], true
}

// MinLoss returns the record with the lowest loss; ties keep the earliest.
// MinLoss 返回损失最低的记录，相同时取最早的一条。
func (s Series) MinLoss() (Record, bool) {
	if len(s.Records) == 0 {
		return Record{}, false
	}
	best := s.Records[0]
	for _, r := range s.Records[1:] {
		if r.ValLoss < best.ValLoss {
			best = r
		}
	}
	return best, true
}

// FirstBelow returns the first record whose loss is at or below threshold.
// FirstBelow 返回第一条损失不高于阈值的记录。
func (s Series) FirstBelow(threshold float64) (Record, bool) {
	for _, r := range s.Records {
		if r.ValLoss <= threshold {
			return r, true
		}
	}
	return Record{}, false
}

// Filter returns a new Series holding the records keep accepts.
func (s Series) Filter(keep func(Record) bool) Series {
	out := Series{Source: s.Source}
	for _, r := range s.Records {
		if keep(r) {
			out.Records = append(out.Records, r)
		}
	}
	return out
}
