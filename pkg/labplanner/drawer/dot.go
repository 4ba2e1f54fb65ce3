package drawer

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/template"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-labplanner/internal/store"
	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

const (
	tubesAttribute = "xlabel"
	rawFillColor   = "#d3d3d3"
	sequenceShape  = "box"
)

// palette holds the fill colour of each operation, as RGB.
var palette = map[model.Operation][3]uint8{
	model.OperationPCR:        {255, 179, 71},
	model.OperationDigest:     {119, 158, 203},
	model.OperationLigate:     {119, 221, 119},
	model.OperationGoldenGate: {177, 156, 217},
	model.OperationGibson:     {244, 154, 194},
	model.OperationTransform:  {253, 253, 150},
	model.OperationPick:       {207, 207, 196},
	model.OperationMiniprep:   {150, 111, 214},
	model.OperationGel:        {255, 105, 97},
	model.OperationZymo:       {3, 192, 60},
}

// OperationColor returns the hex fill colour of constructs produced by op.
// Constructs no step produces are grey.
func OperationColor(op model.Operation) (string, error) {
	rgb, ok := palette[op]
	if !ok {
		return rawFillColor, nil
	}

	colour, err := colors.RGB(rgb[0], rgb[1], rgb[2]) //nolint
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}

	return colour.ToHEX().String(), nil
}

// DOTDrawer writes the construct graph in the graphviz DOT language.
type DOTDrawer struct {
	graph    graph.Graph[string, string]
	store    store.OrderedStore[string, string]
	fileName string
	writer   io.Writer
}

func newDOTDrawer() *DOTDrawer {
	st := store.NewMemoryStore[string, string]()

	return &DOTDrawer{
		store: st,
		graph: graph.NewWithStore(graph.StringHash, st, graph.Directed()),
	}
}

// NewDOTDrawer creates a drawer writing the graph to fileName.
func NewDOTDrawer(fileName string) *DOTDrawer {
	d := newDOTDrawer()
	d.fileName = fileName

	return d
}

// NewDOTWriter creates a drawer writing the graph to w.
func NewDOTWriter(w io.Writer) *DOTDrawer {
	d := newDOTDrawer()
	d.writer = w

	return d
}

// AddConstruct adds a construct to the graph. The first non empty operation
// seen for a construct sets its colour.
func (d *DOTDrawer) AddConstruct(name string, op model.Operation) error {
	err := d.graph.AddVertex(name)
	if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return errors.Wrap(err, "unable to add vertex")
	}

	_, props, err := d.store.Vertex(name)
	if err != nil {
		return errors.Wrap(err, "unable to get vertex properties")
	}

	if _, ok := props.Attributes["fillcolor"]; ok && (op == "" || props.Attributes["tooltip"] != "") {
		return nil
	}

	colour, err := OperationColor(op)
	if err != nil {
		return err
	}

	options := []func(*graph.VertexProperties){
		graph.VertexAttribute("style", "filled"),
		graph.VertexAttribute("fillcolor", colour),
	}
	if op != "" {
		options = append(options, graph.VertexAttribute("tooltip", string(op)))
	}

	return d.store.UpdateVertex(name, options...)
}

// AddLink adds an edge from input to output labelled with op.
func (d *DOTDrawer) AddLink(input, output string, op model.Operation) error {
	err := d.graph.AddEdge(input, output, graph.EdgeAttribute("label", string(op)))
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return errors.Wrapf(err, "unable to add edge from %s to %s", input, output)
	}

	return nil
}

// MarkSequence draws a synthesized construct as a box.
func (d *DOTDrawer) MarkSequence(name string) error {
	err := d.store.UpdateVertex(name, graph.VertexAttribute("shape", sequenceShape))
	if err != nil {
		return errors.Wrap(err, "unable to mark sequence")
	}

	return nil
}

// SetTubes shows the number of new tubes under the construct name.
func (d *DOTDrawer) SetTubes(name string, tubes int) error {
	label := strconv.Itoa(tubes) + " tube"
	if tubes != 1 {
		label += "s"
	}

	err := d.store.UpdateVertex(name, graph.VertexAttribute(tubesAttribute, label))
	if err != nil {
		return errors.Wrap(err, "unable to get vertex properties")
	}

	return nil
}

// Draw writes the graph to the file or writer of the drawer.
func (d *DOTDrawer) Draw() error {
	if d.writer != nil {
		return dot(d.store, d.writer)
	}

	file, err := os.Create(d.fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.fileName)
	}
	defer file.Close()

	err = dot(d.store, file)
	if err != nil {
		return errors.Wrapf(err, "unable to create dot file %s", d.fileName)
	}

	return nil
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           string
	Target           string
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot(st store.OrderedStore[string, string], wrt io.Writer) error {
	desc, err := generateDOT(st)
	if err != nil {
		return errors.Wrap(err, "failed to generate DOT description")
	}

	return renderDOT(wrt, desc)
}

// generateDOT lists vertices, then edges, in insertion order. Template maps
// are printed in key order, so the output only depends on the steps.
func generateDOT(st store.OrderedStore[string, string]) (description, error) {
	desc := description{
		GraphType:    "digraph",
		Attributes:   map[string]string{"rankdir": "LR"},
		EdgeOperator: "->",
	}

	vertices, err := st.ListVertices()
	if err != nil {
		return desc, errors.Wrap(err, "unable to list vertices")
	}

	for _, vertex := range vertices {
		_, props, err := st.Vertex(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		attributes := make(map[string]string, len(props.Attributes))
		htmlAttributes := make(map[string]string)

		for k, v := range props.Attributes {
			if k == tubesAttribute {
				htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="10">%s</FONT>>`, vertex, v)

				continue
			}

			attributes[k] = v
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           vertex,
			SourceWeight:     props.Weight,
			SourceAttributes: attributes,
			HTMLAttributes:   htmlAttributes,
		})
	}

	edges, err := st.ListEdges()
	if err != nil {
		return desc, errors.Wrap(err, "unable to list edges")
	}

	for _, edge := range edges {
		desc.Statements = append(desc.Statements, statement{
			Source:         edge.Source,
			Target:         edge.Target,
			EdgeWeight:     edge.Properties.Weight,
			EdgeAttributes: edge.Properties.Attributes,
		})
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "failed to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
