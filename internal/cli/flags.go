package cli

import (
	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/spf13/pflag"
)

// monthValue is a pflag.Value holding a YYYY-MM month. The zero value
// means "not set".
type monthValue struct {
	m *domain.Month
}

var _ pflag.Value = monthValue{}

func newMonthValue(m *domain.Month) monthValue { return monthValue{m: m} }

func (v monthValue) String() string {
	if v.m == nil || v.m.IsZero() {
		return ""
	}
	return v.m.String()
}

func (v monthValue) Set(s string) error {
	m, err := domain.ParseMonth(s)
	if err != nil {
		return err
	}
	*v.m = m
	return nil
}

func (monthValue) Type() string { return "YYYY-MM" }

// monthFlag registers a --month flag on fs.
func monthFlag(fs *pflag.FlagSet, m *domain.Month, usage string) {
	fs.Var(newMonthValue(m), "month", usage)
}
