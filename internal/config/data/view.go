package data

// View holds the table settings of one resource screen.
type View struct {
	PageSize   int    `yaml:"pageSize,omitempty"`
	SortColumn string `yaml:"sortColumn,omitempty"`
	SortDesc   bool   `yaml:"sortDesc,omitempty"`
}

// Views maps a resource name to its table settings.
type Views map[string]View

// Lookup returns the settings of a resource, falling back to pageSize.
func (vv Views) Lookup(resource string, pageSize int) View {
	v, ok := vv[resource]
	if !ok {
		return View{PageSize: pageSize}
	}
	if v.PageSize <= 0 {
		v.PageSize = pageSize
	}
	return v
}

// Validate drops invalid page sizes.
func (vv Views) Validate() {
	for k, v := range vv {
		if v.PageSize < 0 {
			v.PageSize = 0
			vv[k] = v
		}
	}
}
