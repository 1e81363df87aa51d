// Package zpl renders station labels in Zebra Programming Language.
package zpl

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04:05"
	separator      = " · "

	infoX       = 400
	infoStartY  = 180
	essenceStep = 35
	sourceStep  = 30
	fieldStep   = 28
)

// Field is a custom field declared by a station, in display order.
type Field struct {
	ID    string
	Label string
}

// Station is the snapshot of a station's template configuration used to lay
// out one label.
type Station struct {
	Series          string
	Prefix          string
	Counter         int
	ProducesType    string
	SourceStationID string
	Fields          []Field
}

// Input is everything needed to render a label.
type Input struct {
	Station Station
	// Values holds the submitted form values keyed by field id. The product
	// line reads the "essence", "qualite" and "epaisseur" keys.
	Values map[string]string
	// Source is the upstream label this one was made from, if any.
	Source string
	Date   time.Time
}

// Label is a rendered document along with the number it carries.
type Label struct {
	Document string
	Number   string
	Compact  string
	Payload  string
}

// Renderer lays out labels for one organization.
type Renderer struct {
	organization string
}

func NewRenderer(organization string) *Renderer {
	return &Renderer{organization: organization}
}

// Render builds the label for the station's current counter value. It never
// fails: missing values are left out of the label.
func (r *Renderer) Render(in Input) Label {
	st := in.Station
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	label := Label{
		Number:  FormatSpaced(st.Counter),
		Compact: FormatCompact(st.Counter),
		Payload: Payload(st.Prefix, st.Series, st.Counter),
	}

	var lines []string
	y := infoStartY

	if st.ProducesType != "" {
		if line := productLine(in.Values); line != "" {
			lines = append(lines, fmt.Sprintf("^FO%d,%d^A0N,28,28^FD%s^FS", infoX, y, clean(line)))
			y += essenceStep
		}
	}

	if st.SourceStationID != "" && in.Source != "" {
		lines = append(lines, fmt.Sprintf("^FO%d,%d^A0N,22,22^FDSource: %s^FS", infoX, y, clean(in.Source)))
		y += sourceStep
	}

	for _, f := range st.Fields {
		value := in.Values[f.ID]
		if value == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("^FO%d,%d^A0N,22,22^FD%s: %s^FS", infoX, y, clean(f.Label), clean(value)))
		y += fieldStep
	}

	var b strings.Builder
	b.WriteString("^XA\n^CI28\n^PW812\n^LL406\n^LH0,0\n~SD25\n")
	fmt.Fprintf(&b, "^FO30,28\n^BQN,2,12\n^FDQA,%s^FS\n", clean(label.Payload))
	fmt.Fprintf(&b, "^FO400,30^A0N,36,36^FD%s^FS\n", clean(st.Series))
	fmt.Fprintf(&b, "^FO400,80^A0N,80,80^FD%s^FS\n", label.Number)
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "^FO400,360^A0N,24,24^FD%s^FS\n", clean(r.organization))
	fmt.Fprintf(&b, "^FO30,370^A0N,18,18^FD%s^FS\n", date.Format(dateLayout))
	b.WriteString("^XZ")

	label.Document = b.String()
	return label
}

// RenderPrinterTest builds the short label printed when an administrator
// checks a printer's connection.
func (r *Renderer) RenderPrinterTest(printerName, address string, now time.Time) string {
	var b strings.Builder
	b.WriteString("^XA\n^CI28\n^PW812\n^LL203\n")
	fmt.Fprintf(&b, "^FO50,30^A0N,40,40^FDTEST %s^FS\n", clean(printerName))
	fmt.Fprintf(&b, "^FO50,80^A0N,25,25^FD%s - WoodStock^FS\n", clean(r.organization))
	fmt.Fprintf(&b, "^FO50,120^A0N,20,20^FD%s^FS\n", now.Format(dateTimeLayout))
	fmt.Fprintf(&b, "^FO50,160^A0N,18,18^FDIP: %s^FS\n", clean(address))
	b.WriteString("^XZ")
	return b.String()
}

// productLine composes "essence · quality · thickness mm". Compound
// thicknesses such as "32/27" keep their first component.
func productLine(values map[string]string) string {
	essence := strings.TrimSpace(values["essence"])
	if essence == "" {
		return ""
	}
	line := essence
	if q := strings.TrimSpace(values["qualite"]); q != "" {
		line += separator + q
	}
	if ep := strings.TrimSpace(values["epaisseur"]); ep != "" {
		ep = strings.TrimSpace(strings.SplitN(ep, "/", 2)[0])
		if ep != "" {
			line += separator + ep + "mm"
		}
	}
	return line
}

// clean strips the ZPL command prefixes from user supplied text so it can't
// end a field early.
func clean(s string) string {
	return strings.NewReplacer("^", " ", "~", " ", "\n", " ", "\r", " ").Replace(s)
}
