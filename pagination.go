package dirscrape

// PaginationMechanism identifies how a site paginates a listing.
type PaginationMechanism string

// Pagination mechanisms.
const (
	// MechanismNone means no pagination was detected.
	MechanismNone PaginationMechanism = ""

	// MechanismURLParam paginates via a query parameter (?page=2).
	MechanismURLParam PaginationMechanism = "url-param"

	// MechanismNextLink paginates via a next-page link inside a
	// pagination container.
	MechanismNextLink PaginationMechanism = "next-link"

	// MechanismButton paginates via a load-more/show-more control.
	MechanismButton PaginationMechanism = "button"
)

// PaginationPlan describes the pagination mechanism discovered on a page.
type PaginationPlan struct {
	// HasPagination is true when any pagination signal was found.
	HasPagination bool

	// Mechanism is the detected pagination kind.
	Mechanism PaginationMechanism

	// Param is the pagination query parameter name when Mechanism is
	// MechanismURLParam.
	Param string

	// TotalPages is the highest page number advertised by the pagination
	// container, or 0 when unknown.
	TotalPages int

	// NextURL is the absolute URL of the next page, when a next control
	// was found. The planner looks only one hop ahead; callers re-detect
	// per page to keep following next links.
	NextURL string
}
