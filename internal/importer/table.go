package importer

import (
	"strings"

	"github.com/staff-directory-api/internal/models"
)

// column identifies a StaffForm field a table column maps to
type column int

const (
	colFirstName column = iota
	colLastName
	colFullName
	colFunction
	colDepartment
	colLocation
	colExtension
	colEmail
	colAvailability
	colAbsenceReason
	colAbsenceDuration
	colReturnDate
	colRole
	colSkills
	colLanguages
	colStartDate
	colEmergencyContact
)

// headerAliases maps a squashed header (lowercase, no separators) to its column.
// English and French spellings are both accepted.
var headerAliases = map[string]column{
	"firstname": colFirstName, "first": colFirstName, "givenname": colFirstName, "prenom": colFirstName, "prénom": colFirstName,
	"lastname": colLastName, "last": colLastName, "surname": colLastName, "familyname": colLastName, "nom": colLastName,
	"name": colFullName, "fullname": colFullName, "nomcomplet": colFullName,
	"function": colFunction, "title": colFunction, "jobtitle": colFunction, "position": colFunction, "fonction": colFunction, "poste": colFunction,
	"department": colDepartment, "dept": colDepartment, "service": colDepartment, "departement": colDepartment, "département": colDepartment,
	"location": colLocation, "office": colLocation, "bureau": colLocation, "localisation": colLocation,
	"extension": colExtension, "ext": colExtension, "phone": colExtension, "telephone": colExtension, "téléphone": colExtension,
	"email": colEmail, "mail": colEmail, "emailaddress": colEmail, "courriel": colEmail,
	"isavailable": colAvailability, "available": colAvailability, "availability": colAvailability, "status": colAvailability, "disponible": colAvailability, "disponibilite": colAvailability, "disponibilité": colAvailability,
	"absencereason": colAbsenceReason, "reason": colAbsenceReason, "motif": colAbsenceReason,
	"absenceduration": colAbsenceDuration, "duration": colAbsenceDuration, "duree": colAbsenceDuration, "durée": colAbsenceDuration,
	"expectedreturndate": colReturnDate, "returndate": colReturnDate, "return": colReturnDate, "dateretour": colReturnDate, "retour": colReturnDate,
	"role": colRole, "rôle": colRole,
	"skills": colSkills, "competences": colSkills, "compétences": colSkills,
	"languages": colLanguages, "langues": colLanguages,
	"startdate": colStartDate, "hiredate": colStartDate, "datedebut": colStartDate,
	"emergencycontact": colEmergencyContact, "contacturgence": colEmergencyContact,
}

func squash(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "", ".", "", "'", "").Replace(h)
}

// mapHeader returns the column index of each recognized header cell. The
// first occurrence of a column wins.
func mapHeader(header []string) map[column]int {
	cols := make(map[column]int)
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if c, ok := headerAliases[squash(h)]; ok {
			if _, dup := cols[c]; !dup {
				cols[c] = i
			}
		}
	}
	return cols
}

// fromTable converts a header row plus data rows into candidates. lines holds
// the 1-based source line of each row; nil means row i sits on line i+1.
func fromTable(rows [][]string, lines []int) ([]Candidate, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyArtifact
	}
	cols := mapHeader(rows[0])
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}

	var out []Candidate
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		line := i + 1
		if i < len(lines) {
			line = lines[i]
		}
		out = append(out, Candidate{Line: line, Form: formFromRow(cols, rows[i])})
	}
	return out, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func formFromRow(cols map[column]int, row []string) models.StaffForm {
	get := func(c column) string {
		if idx, ok := cols[c]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	f := models.StaffForm{
		FirstName:          get(colFirstName),
		LastName:           get(colLastName),
		Function:           get(colFunction),
		Department:         ParseDepartment(get(colDepartment)),
		Location:           get(colLocation),
		Extension:          get(colExtension),
		Email:              get(colEmail),
		AbsenceReason:      get(colAbsenceReason),
		AbsenceDuration:    ParseDuration(get(colAbsenceDuration)),
		ExpectedReturnDate: get(colReturnDate),
		Role:               get(colRole),
		Skills:             splitTags(get(colSkills)),
		Languages:          splitTags(get(colLanguages)),
		StartDate:          get(colStartDate),
		EmergencyContact:   get(colEmergencyContact),
	}

	if f.FirstName == "" && f.LastName == "" {
		f.LastName, f.FirstName = splitFullName(get(colFullName))
	}
	if v, ok := ParseAvailability(get(colAvailability)); ok {
		f.IsAvailable = &v
	} else if f.AbsenceReason != "" || f.AbsenceDuration != "" {
		absent := false
		f.IsAvailable = &absent
	}
	return f
}

// splitFullName splits "LAST First Middle" into last and first names
func splitFullName(full string) (last, first string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' || r == ',' })
}

// ParseDepartment maps a department key or label, in any case, to its
// department; unknown values are kept as written
func ParseDepartment(s string) models.Department {
	s = strings.TrimSpace(s)
	for _, d := range models.KnownDepartments {
		if strings.EqualFold(s, string(d)) || strings.EqualFold(s, d.Label()) {
			return d
		}
	}
	return models.Department(s)
}

// ParseDuration maps a duration key or label to its class; unknown values are
// kept so validation can report them
func ParseDuration(s string) models.AbsenceDuration {
	s = strings.TrimSpace(s)
	for _, d := range models.AbsenceDurations {
		if strings.EqualFold(s, string(d)) || strings.EqualFold(s, d.Label()) {
			return d
		}
	}
	return models.AbsenceDuration(strings.ToLower(s))
}

// ParseAvailability reads the common spellings of a presence flag
func ParseAvailability(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "available", "present", "oui", "disponible", "présent":
		return true, true
	case "false", "no", "n", "0", "absent", "unavailable", "non", "indisponible":
		return false, true
	}
	return false, false
}
