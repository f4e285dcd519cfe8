package views

const (
	defaultPageRows = 8
	minPageRows     = 3
)

// Paginator keeps a cursor over the report list. The visible page is always
// the one holding the cursor.
type Paginator struct {
	rows   int
	total  int
	cursor int
}

// NewPaginator returns a paginator showing rows reports per page
func NewPaginator(rows int) *Paginator {
	p := &Paginator{}
	p.Resize(rows)
	return p
}

// Resize changes the page size; the cursor stays on the same report.
func (p *Paginator) Resize(rows int) {
	if rows < 1 {
		rows = defaultPageRows
	}
	p.rows = rows
}

// FitHeight sizes pages to whatever a terminal of the given height leaves
// once chrome lines are reserved.
func (p *Paginator) FitHeight(height, chrome int) {
	p.Resize(max(height-chrome, minPageRows))
}

// PageRows returns the current page size
func (p *Paginator) PageRows() int {
	return p.rows
}

// SetTotal updates the report count and clamps the cursor into it
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.cursor = min(p.cursor, max(p.total-1, 0))
}

func (p *Paginator) Cursor() int {
	return p.cursor
}

func (p *Paginator) CursorUp() bool {
	return p.moveTo(p.cursor - 1)
}

func (p *Paginator) CursorDown() bool {
	return p.moveTo(p.cursor + 1)
}

// NextPage puts the cursor on the first report of the following page
func (p *Paginator) NextPage() bool {
	return p.moveTo(p.CurrentPage() * p.rows)
}

// PrevPage puts the cursor on the first report of the preceding page
func (p *Paginator) PrevPage() bool {
	if p.CurrentPage() == 1 {
		return false
	}
	return p.moveTo((p.CurrentPage() - 2) * p.rows)
}

// VisibleRange returns the half-open index range of the cursor's page
func (p *Paginator) VisibleRange() (start, end int) {
	start = (p.CurrentPage() - 1) * p.rows
	return start, min(start+p.rows, p.total)
}

// CurrentPage is 1-based
func (p *Paginator) CurrentPage() int {
	return p.cursor/p.rows + 1
}

func (p *Paginator) TotalPages() int {
	return max((p.total+p.rows-1)/p.rows, 1)
}

func (p *Paginator) moveTo(i int) bool {
	if i < 0 || i >= p.total || i == p.cursor {
		return false
	}
	p.cursor = i
	return true
}
