package reporting

import (
	"sort"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/google/uuid"
)

// NodeType identifies a hierarchy node's level
type NodeType string

const (
	NodeTypeRoot           NodeType = "ROOT"
	NodeTypeClassification NodeType = "CLASSIFICATION"
	NodeTypeCenter         NodeType = "CENTER"
	NodeTypeRubric         NodeType = "RUBRIC"
	NodeTypeRevenueType    NodeType = "REVENUE_TYPE"
)

// Synthetic codes for the cash-flow roots and the net-result row
const (
	InflowRootCode  = "INFLOW"
	OutflowRootCode = "OUTFLOW"
	NetResultCode   = "NET_RESULT"
)

// Node is one derived row of a report matrix. Values and PrevValues carry
// one entry per requested period key; on every branch node they equal the
// sum of the children's corresponding entries.
type Node struct {
	Code          string     `json:"code"`
	Name          string     `json:"name"`
	Type          NodeType   `json:"type"`
	RevenueTypeID *uuid.UUID `json:"revenue_type_id,omitempty"`
	Values        ValueMap   `json:"values"`
	PrevValues    ValueMap   `json:"prev_values,omitempty"`
	Children      []*Node    `json:"children,omitempty"`
}

// grouped holds leaf-level aggregates for one period key set
type grouped struct {
	keys      []PeriodKey
	byRubric  map[string]ValueMap
	byRevenue map[uuid.UUID]ValueMap
}

func groupContributions(contributions []Contribution, keys []PeriodKey) grouped {
	g := grouped{
		keys:      keys,
		byRubric:  make(map[string]ValueMap),
		byRevenue: make(map[uuid.UUID]ValueMap),
	}
	inKeys := make(map[PeriodKey]bool, len(keys))
	for _, key := range keys {
		inKeys[key] = true
	}
	for _, contribution := range contributions {
		if !inKeys[contribution.Key] {
			continue
		}
		if contribution.IsRevenue {
			values, ok := g.byRevenue[contribution.RevenueTypeID]
			if !ok {
				values = NewValueMap(keys)
				g.byRevenue[contribution.RevenueTypeID] = values
			}
			values.Add(contribution.Key, contribution.Amount)
			continue
		}
		code := contribution.Account.RubricCode
		values, ok := g.byRubric[code]
		if !ok {
			values = NewValueMap(keys)
			g.byRubric[code] = values
		}
		values.Add(contribution.Key, contribution.Amount)
	}
	return g
}

func (g grouped) rubricValues(code string) ValueMap {
	if values, ok := g.byRubric[code]; ok {
		return values
	}
	return NewValueMap(g.keys)
}

func (g grouped) revenueValues(id uuid.UUID) ValueMap {
	if values, ok := g.byRevenue[id]; ok {
		return values
	}
	return NewValueMap(g.keys)
}

// hierarchyBuilder assembles report trees out of grouped leaf values
type hierarchyBuilder struct {
	request      ReportRequest
	index        *ChartIndex
	revenueTypes []ledger.RevenueType
	primary      grouped
	compare      *grouped
	primaryKeys  []PeriodKey
	compareKeys  []PeriodKey
}

func (b *hierarchyBuilder) build() []*Node {
	if b.request.Mode == ModeCash {
		return b.buildCashFlow()
	}
	return b.buildAccrual()
}

// buildAccrual produces one node per classification code, ordered by code.
// The income classification is always present, with revenue-type leaves; all
// other classifications carry center and rubric descendants.
func (b *hierarchyBuilder) buildAccrual() []*Node {
	incomeCode := b.request.IncomeCode()

	classifications := make([]ClassificationRef, len(b.index.Classifications))
	copy(classifications, b.index.Classifications)
	if !hasClassification(classifications, incomeCode) {
		classifications = append(classifications, ClassificationRef{
			Code: incomeCode,
			Name: DefaultIncomeClassificationName,
		})
		sort.Slice(classifications, func(i, j int) bool {
			return ledger.CompareCodes(classifications[i].Code, classifications[j].Code) < 0
		})
	}

	nodes := make([]*Node, 0, len(classifications))
	for _, classification := range classifications {
		node := &Node{
			Code: classification.Code,
			Name: classification.Name,
			Type: NodeTypeClassification,
		}
		if classification.Code == incomeCode {
			node.Children = b.buildRevenueLeaves()
		} else {
			node.Children = b.buildCenters(classification.Code)
		}
		b.rollUp(node)
		nodes = append(nodes, node)
	}
	return nodes
}

// buildCashFlow produces exactly two roots, partitioning centers by whether
// their classification is the income classification.
func (b *hierarchyBuilder) buildCashFlow() []*Node {
	incomeCode := b.request.IncomeCode()

	inflow := &Node{Code: InflowRootCode, Name: "Total Inflows", Type: NodeTypeRoot}
	outflow := &Node{Code: OutflowRootCode, Name: "Total Outflows", Type: NodeTypeRoot}

	for _, center := range b.index.Centers {
		node := b.buildCenter(center)
		if center.ClassificationCode == incomeCode {
			inflow.Children = append(inflow.Children, node)
		} else {
			outflow.Children = append(outflow.Children, node)
		}
	}

	b.rollUp(inflow)
	b.rollUp(outflow)
	return []*Node{inflow, outflow}
}

func (b *hierarchyBuilder) buildCenters(classificationCode string) []*Node {
	centers := b.index.CentersOf(classificationCode)
	nodes := make([]*Node, 0, len(centers))
	for _, center := range centers {
		nodes = append(nodes, b.buildCenter(center))
	}
	return nodes
}

func (b *hierarchyBuilder) buildCenter(center CenterRef) *Node {
	node := &Node{
		Code: center.Code,
		Name: center.Name,
		Type: NodeTypeCenter,
	}
	for _, account := range b.index.RubricsOf(center.Code) {
		leaf := &Node{
			Code:   account.RubricCode,
			Name:   account.RubricName,
			Type:   NodeTypeRubric,
			Values: b.primary.rubricValues(account.RubricCode),
		}
		if b.compare != nil {
			leaf.PrevValues = b.compare.rubricValues(account.RubricCode)
		}
		node.Children = append(node.Children, leaf)
	}
	return node
}

// buildRevenueLeaves creates one leaf per known revenue type, sorted by name,
// plus the synthetic uncategorized leaf whenever it holds a value.
func (b *hierarchyBuilder) buildRevenueLeaves() []*Node {
	sorted := make([]ledger.RevenueType, len(b.revenueTypes))
	copy(sorted, b.revenueTypes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	nodes := make([]*Node, 0, len(sorted)+1)
	for _, revenueType := range sorted {
		id := revenueType.ID
		leaf := &Node{
			Code:          id.String(),
			Name:          revenueType.Name,
			Type:          NodeTypeRevenueType,
			RevenueTypeID: &id,
			Values:        b.primary.revenueValues(id),
		}
		if b.compare != nil {
			leaf.PrevValues = b.compare.revenueValues(id)
		}
		nodes = append(nodes, leaf)
	}

	uncategorized := b.primary.revenueValues(UncategorizedRevenueTypeID)
	var uncategorizedPrev ValueMap
	if b.compare != nil {
		uncategorizedPrev = b.compare.revenueValues(UncategorizedRevenueTypeID)
	}
	if !uncategorized.IsZero() || (uncategorizedPrev != nil && !uncategorizedPrev.IsZero()) {
		id := UncategorizedRevenueTypeID
		leaf := &Node{
			Code:          id.String(),
			Name:          UncategorizedRevenueTypeName,
			Type:          NodeTypeRevenueType,
			RevenueTypeID: &id,
			Values:        uncategorized,
		}
		if b.compare != nil {
			leaf.PrevValues = uncategorizedPrev
		}
		nodes = append(nodes, leaf)
	}
	return nodes
}

// rollUp fills a branch node's values with the sum of its children, at every
// level, for both primary and compare periods.
func (b *hierarchyBuilder) rollUp(node *Node) {
	if node.Values != nil {
		return
	}
	node.Values = NewValueMap(b.primaryKeys)
	if b.compare != nil {
		node.PrevValues = NewValueMap(b.compareKeys)
	}
	for _, child := range node.Children {
		b.rollUp(child)
		node.Values.AddAll(child.Values)
		if b.compare != nil && child.PrevValues != nil {
			node.PrevValues.AddAll(child.PrevValues)
		}
	}
}

// netResult sums the top-level nodes into the bottom report row
func (b *hierarchyBuilder) netResult(roots []*Node) *Node {
	net := &Node{
		Code:   NetResultCode,
		Name:   "Net Result",
		Type:   NodeTypeRoot,
		Values: NewValueMap(b.primaryKeys),
	}
	if b.compare != nil {
		net.PrevValues = NewValueMap(b.compareKeys)
	}
	for _, root := range roots {
		net.Values.AddAll(root.Values)
		if b.compare != nil && root.PrevValues != nil {
			net.PrevValues.AddAll(root.PrevValues)
		}
	}
	return net
}

// FilterEmptyNodes prunes rows whose primary values are all zero and whose
// descendants are likewise empty. Filtering only changes which rows render;
// the surviving nodes keep their computed totals untouched.
func FilterEmptyNodes(nodes []*Node) []*Node {
	var out []*Node
	for _, node := range nodes {
		if isHideable(node) {
			continue
		}
		kept := *node
		kept.Children = FilterEmptyNodes(node.Children)
		out = append(out, &kept)
	}
	return out
}

func isHideable(node *Node) bool {
	if !node.Values.IsZero() {
		return false
	}
	for _, child := range node.Children {
		if !isHideable(child) {
			return false
		}
	}
	return true
}

func hasClassification(refs []ClassificationRef, code string) bool {
	for _, ref := range refs {
		if ref.Code == code {
			return true
		}
	}
	return false
}
