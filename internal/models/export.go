package models

// ExportHeader is the column order of the flat export projection
var ExportHeader = []string{
	"last_name",
	"first_name",
	"function",
	"department",
	"extension",
	"email",
	"availability",
	"location",
	"last_seen",
}

// ExportRow is one flattened roster record
type ExportRow struct {
	LastName     string `json:"last_name"`
	FirstName    string `json:"first_name"`
	Function     string `json:"function"`
	Department   string `json:"department"`
	Extension    string `json:"extension"`
	Email        string `json:"email"`
	Availability string `json:"availability"`
	Location     string `json:"location"`
	LastSeen     string `json:"last_seen"`
}

// Values returns the row in ExportHeader order
func (r ExportRow) Values() []string {
	return []string{
		r.LastName,
		r.FirstName,
		r.Function,
		r.Department,
		r.Extension,
		r.Email,
		r.Availability,
		r.Location,
		r.LastSeen,
	}
}
