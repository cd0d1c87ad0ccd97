package taxonomy

import "strings"

// Production status values accepted by the advanced-search endpoint.
var statusWire = map[string]string{
	"announced":      "announced",
	"preproduction":  "pre_production",
	"filming":        "filming",
	"postproduction": "post_production",
	"completed":      "completed",
	"released":       "released",
}

// StatusWire translates an abstract production status. Unknown values
// return ok=false.
func StatusWire(status string) (string, bool) {
	v, ok := statusWire[strings.ToLower(strings.TrimSpace(status))]
	return v, ok
}

// Award groups, keyed by the abstract group id. Bottom groups sort by
// rating ascending unless the request says otherwise.
type AwardGroup struct {
	Wire   string
	Bottom bool
}

var awardGroups = map[string]AwardGroup{
	"top100":           {Wire: "top_100", Bottom: false},
	"top250":           {Wire: "top_250", Bottom: false},
	"top1000":          {Wire: "top_1000", Bottom: false},
	"bottom100":        {Wire: "bottom_100", Bottom: true},
	"bottom250":        {Wire: "bottom_250", Bottom: true},
	"bottom1000":       {Wire: "bottom_1000", Bottom: true},
	"oscarwinner":      {Wire: "oscar_winner", Bottom: false},
	"oscarnominee":     {Wire: "oscar_nominee", Bottom: false},
	"oscarpicture":     {Wire: "oscar_best_picture_winners", Bottom: false},
	"oscardirector":    {Wire: "oscar_best_director_winners", Bottom: false},
	"emmywinner":       {Wire: "emmy_winner", Bottom: false},
	"emmynominee":      {Wire: "emmy_nominee", Bottom: false},
	"globewinner":      {Wire: "golden_globe_winner", Bottom: false},
	"globenominee":     {Wire: "golden_globe_nominee", Bottom: false},
	"razziewinner":     {Wire: "razzie_winner", Bottom: true},
	"razzienominee":    {Wire: "razzie_nominee", Bottom: true},
	"nationalboard":    {Wire: "national_film_preservation_board_winner", Bottom: false},
}

// DefaultAwardGroup is used when a request asks for awards without
// naming a group.
const DefaultAwardGroup = "oscarwinner"

// AwardGroupWire resolves an abstract award-group id.
func AwardGroupWire(group string) (AwardGroup, bool) {
	g, ok := awardGroups[strings.ToLower(strings.ReplaceAll(strings.TrimSpace(group), "_", ""))]
	return g, ok
}

// Gender values for /search/name.
var genderWire = map[string]string{
	"male":      "male",
	"female":    "female",
	"nonbinary": "non_binary",
	"other":     "other",
}

// GenderWire resolves an abstract gender tag.
func GenderWire(gender string) (string, bool) {
	v, ok := genderWire[strings.ToLower(strings.TrimSpace(gender))]
	return v, ok
}

// Streaming availability buckets for the "home" release window. Search
// uses online_availability; lists use watch_option.
var (
	OnlineAvailabilitySearch = "US/today"
	OnlineAvailabilityList   = "streaming"
)

// TheaterAvailability is the now_playing region for theater menus.
var TheaterAvailability = "US"

// View modes.
var viewWire = map[string][2]string{
	"detail": {"advanced", "detail"},
	"simple": {"simple", "compact"},
	"grid":   {"advanced", "grid"},
}

// ViewWire translates a view mode for a dialect; unknown views default
// to the detail mode.
func ViewWire(view string, d Dialect) string {
	wire, ok := viewWire[strings.ToLower(strings.TrimSpace(view))]
	if !ok {
		wire = viewWire["detail"]
	}
	return wire[d]
}
