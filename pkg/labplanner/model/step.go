package model

// Operation tags the kind of work a Step performs.
type Operation string

const (
	OperationPCR        Operation = "PCR"
	OperationDigest     Operation = "Digest"
	OperationLigate     Operation = "Ligate"
	OperationGoldenGate Operation = "Golden Gate"
	OperationGibson     Operation = "Gibson"
	OperationTransform  Operation = "Transform"
	OperationPick       Operation = "Pick"
	OperationMiniprep   Operation = "Miniprep"
	OperationGel        Operation = "Gel"
	OperationZymo       Operation = "Zymo"
)

// Step is one operation of a construction file. The set of implementations
// is closed: only the variants declared in this file satisfy it.
type Step interface {
	// Operation returns the variant tag.
	Operation() Operation
	// Output returns the name of the construct the step produces.
	Output() string
	// Inputs returns the constructs the step consumes, in declaration order.
	Inputs() []string

	isStep()
}

// PCR amplifies Template with a forward and a reverse oligo.
type PCR struct {
	Product      string `mapstructure:"output" validate:"required"`
	ForwardOligo string `mapstructure:"forwardOligo" validate:"required"`
	ReverseOligo string `mapstructure:"reverseOligo" validate:"required"`
	Template     string `mapstructure:"template" validate:"required"`
	ProductSize  int    `mapstructure:"productSize" validate:"gte=0"`
}

func (PCR) Operation() Operation { return OperationPCR }
func (s PCR) Output() string     { return s.Product }
func (s PCR) Inputs() []string   { return []string{s.Template, s.ForwardOligo, s.ReverseOligo} }
func (PCR) isStep()              {}

// Digest cuts DNA with one or more restriction enzymes and keeps FragSelect.
type Digest struct {
	Product     string    `mapstructure:"output" validate:"required"`
	DNA         string    `mapstructure:"dna" validate:"required"`
	Enzymes     []Reagent `mapstructure:"enzymes" validate:"required,min=1,dive,required"`
	FragSelect  string    `mapstructure:"fragSelect"`
	ProductSize int       `mapstructure:"productSize" validate:"gte=0"`
}

func (Digest) Operation() Operation { return OperationDigest }
func (s Digest) Output() string     { return s.Product }
func (s Digest) Inputs() []string   { return []string{s.DNA} }
func (Digest) isStep()              {}

// Ligate joins DNA fragments.
type Ligate struct {
	Product string   `mapstructure:"output" validate:"required"`
	DNAs    []string `mapstructure:"dnas" validate:"required,min=1,dive,required"`
}

func (Ligate) Operation() Operation { return OperationLigate }
func (s Ligate) Output() string     { return s.Product }
func (s Ligate) Inputs() []string   { return append([]string(nil), s.DNAs...) }
func (Ligate) isStep()              {}

// GoldenGate assembles DNA fragments with a type IIS enzyme.
type GoldenGate struct {
	Product string   `mapstructure:"output" validate:"required"`
	DNAs    []string `mapstructure:"dnas" validate:"required,min=1,dive,required"`
	Enzyme  Reagent  `mapstructure:"enzyme" validate:"required"`
}

func (GoldenGate) Operation() Operation { return OperationGoldenGate }
func (s GoldenGate) Output() string     { return s.Product }
func (s GoldenGate) Inputs() []string   { return append([]string(nil), s.DNAs...) }
func (GoldenGate) isStep()              {}

// Gibson assembles DNA fragments with overlapping ends.
type Gibson struct {
	Product string   `mapstructure:"output" validate:"required"`
	DNAs    []string `mapstructure:"dnas" validate:"required,min=1,dive,required"`
}

func (Gibson) Operation() Operation { return OperationGibson }
func (s Gibson) Output() string     { return s.Product }
func (s Gibson) Inputs() []string   { return append([]string(nil), s.DNAs...) }
func (Gibson) isStep()              {}

// Transform puts DNA into competent cells of Strain and plates them.
type Transform struct {
	Product     string   `mapstructure:"output" validate:"required"`
	DNA         string   `mapstructure:"dna" validate:"required"`
	Strain      string   `mapstructure:"strain" validate:"required"`
	Antibiotics []string `mapstructure:"antibiotics" validate:"omitempty,dive,required"`
	Temperature int      `mapstructure:"temperature" validate:"gte=0"`
}

func (Transform) Operation() Operation { return OperationTransform }
func (s Transform) Output() string     { return s.Product }
func (s Transform) Inputs() []string   { return []string{s.DNA} }
func (Transform) isStep()              {}

// Pick grows colonies of a transformation.
type Pick struct {
	Product string `mapstructure:"output" validate:"required"`
}

func (Pick) Operation() Operation { return OperationPick }
func (s Pick) Output() string     { return s.Product }
func (Pick) Inputs() []string     { return nil }
func (Pick) isStep()              {}

// Miniprep extracts plasmid from picked cultures.
type Miniprep struct {
	Product string `mapstructure:"output" validate:"required"`
}

func (Miniprep) Operation() Operation { return OperationMiniprep }
func (s Miniprep) Output() string     { return s.Product }
func (Miniprep) Inputs() []string     { return nil }
func (Miniprep) isStep()              {}

// Gel runs Sample on an agarose gel, expecting a band of Size base pairs.
type Gel struct {
	Product string `mapstructure:"output" validate:"required"`
	Sample  string `mapstructure:"sample" validate:"required"`
	Size    int    `mapstructure:"size" validate:"gte=0"`
}

func (Gel) Operation() Operation { return OperationGel }
func (s Gel) Output() string     { return s.Product }
func (s Gel) Inputs() []string   { return []string{s.Sample} }
func (Gel) isStep()              {}

// Zymo purifies a reaction, eluting in Volume microliters.
type Zymo struct {
	Product string  `mapstructure:"output" validate:"required"`
	Volume  float64 `mapstructure:"volume" validate:"gte=0"`
}

func (Zymo) Operation() Operation { return OperationZymo }
func (s Zymo) Output() string     { return s.Product }
func (Zymo) Inputs() []string     { return nil }
func (Zymo) isStep()              {}

var (
	_ Step = PCR{}
	_ Step = Digest{}
	_ Step = Ligate{}
	_ Step = GoldenGate{}
	_ Step = Gibson{}
	_ Step = Transform{}
	_ Step = Pick{}
	_ Step = Miniprep{}
	_ Step = Gel{}
	_ Step = Zymo{}
)
