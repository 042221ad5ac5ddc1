package reporting

import (
	"sort"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/google/uuid"
)

// ClassificationRef is one distinct top-level chart entry
type ClassificationRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CenterRef is one distinct mid-level chart entry
type CenterRef struct {
	Code               string `json:"code"`
	Name               string `json:"name"`
	ClassificationCode string `json:"classification_code"`
}

// ChartIndex holds lookup structures derived from the flat chart-of-accounts
// list. It is rebuilt whenever the source list changes; an empty input yields
// empty views.
type ChartIndex struct {
	Accounts        []ledger.ChartOfAccount
	ByID            map[uuid.UUID]*ledger.ChartOfAccount
	ByRubricCode    map[string]*ledger.ChartOfAccount
	Classifications []ClassificationRef
	Centers         []CenterRef
}

// NewChartIndex builds the derived views from the full chart-of-accounts list
func NewChartIndex(accounts []ledger.ChartOfAccount) *ChartIndex {
	index := &ChartIndex{
		Accounts:     accounts,
		ByID:         make(map[uuid.UUID]*ledger.ChartOfAccount, len(accounts)),
		ByRubricCode: make(map[string]*ledger.ChartOfAccount, len(accounts)),
	}

	classifications := make(map[string]string)
	centers := make(map[string]CenterRef)

	for i := range accounts {
		account := &accounts[i]
		index.ByID[account.ID] = account
		index.ByRubricCode[account.RubricCode] = account
		classifications[account.ClassificationCode] = account.ClassificationName
		centers[account.CenterCode] = CenterRef{
			Code:               account.CenterCode,
			Name:               account.CenterName,
			ClassificationCode: account.ClassificationCode,
		}
	}

	index.Classifications = make([]ClassificationRef, 0, len(classifications))
	for code, name := range classifications {
		index.Classifications = append(index.Classifications, ClassificationRef{Code: code, Name: name})
	}
	sort.Slice(index.Classifications, func(i, j int) bool {
		return ledger.CompareCodes(index.Classifications[i].Code, index.Classifications[j].Code) < 0
	})

	index.Centers = make([]CenterRef, 0, len(centers))
	for _, center := range centers {
		index.Centers = append(index.Centers, center)
	}
	sort.Slice(index.Centers, func(i, j int) bool {
		return ledger.CompareCodes(index.Centers[i].Code, index.Centers[j].Code) < 0
	})

	return index
}

// CentersOf returns the centers belonging to one classification, in code order
func (x *ChartIndex) CentersOf(classificationCode string) []CenterRef {
	var out []CenterRef
	for _, center := range x.Centers {
		if center.ClassificationCode == classificationCode {
			out = append(out, center)
		}
	}
	return out
}

// RubricsOf returns the accounts belonging to one center, in code order
func (x *ChartIndex) RubricsOf(centerCode string) []*ledger.ChartOfAccount {
	var out []*ledger.ChartOfAccount
	for i := range x.Accounts {
		if x.Accounts[i].CenterCode == centerCode {
			out = append(out, &x.Accounts[i])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return ledger.CompareCodes(out[i].RubricCode, out[j].RubricCode) < 0
	})
	return out
}
