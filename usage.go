package chat

// Usage holds the three token counters a provider reports.
type Usage struct {
	Prompt   int
	Response int
	Total    int
}

// UsageTotals accumulates Usage reports for the lifetime of the process.
//
// Providers differ in what a usage report means: some send cumulative
// counts for the message so far, others send per-chunk increments.
// UsageTotals does not try to tell them apart. It adds every report it
// receives, so with a cumulative provider the totals overcount. Callers
// that need exact numbers must feed it only the final report of a turn.
//
// The zero value is ready to use. There is no reset.
type UsageTotals struct {
	totals Usage
}

// Apply adds u to the running totals. Negative counters are treated as
// zero so the totals never decrease.
func (t *UsageTotals) Apply(u Usage) {
	t.totals.Prompt += max(0, u.Prompt)
	t.totals.Response += max(0, u.Response)
	t.totals.Total += max(0, u.Total)
}

// Totals returns the current totals.
func (t *UsageTotals) Totals() Usage {
	return t.totals
}
