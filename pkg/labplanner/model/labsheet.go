package model

import "github.com/shopspring/decimal"

// Reagent is an ingredient of a reaction. Abstract reagents stand for the
// DNA or oligos of a specific step; concrete reagents are bench stock.
type Reagent string

// Abstract reagents.
const (
	ReagentMastermix Reagent = "mastermix"
	ReagentPrimer1   Reagent = "primer1"
	ReagentPrimer2   Reagent = "primer2"
	ReagentTemplate  Reagent = "template"
	ReagentFrag1     Reagent = "frag1"
	ReagentFrag2     Reagent = "frag2"
	ReagentFrag3     Reagent = "frag3"
	ReagentFrag4     Reagent = "frag4"
	ReagentDNA       Reagent = "DNA"
)

// Concrete reagents.
const (
	DdH2O                     Reagent = "ddH2O"
	Phusion                   Reagent = "Phusion Polymerase"
	Q5Polymerase              Reagent = "Q5 Polymerase"
	PrimeSTARGXLPolymerase    Reagent = "PrimeSTAR GXL DNA Polymerase"
	GibsonAssemblyMasterMix   Reagent = "Gibson Assembly Master Mix"
	DpnI                      Reagent = "DpnI"
	BamHI                     Reagent = "BamHI"
	BglII                     Reagent = "BglII"
	BsaI                      Reagent = "BsaI"
	BsmBI                     Reagent = "BsmBI"
	T4DNALigase               Reagent = "T4 DNA Ligase"
	EcoRI                     Reagent = "EcoRI"
	SpeI                      Reagent = "SpeI"
	XhoI                      Reagent = "XhoI"
	XbaI                      Reagent = "XbaI"
	PstI                      Reagent = "PstI"
	HindIII                   Reagent = "HindIII"
	T4DNALigaseBuffer10x      Reagent = "10x T4 DNA Ligase Buffer"
	NEBBuffer1_10x            Reagent = "10x NEB Buffer 1"
	NEBBuffer2_10x            Reagent = "10x NEB Buffer 2"
	NEBBuffer3_10x            Reagent = "10x NEB Buffer 3"
	NEBBuffer4_10x            Reagent = "10x NEB Buffer 4"
	Q5PolymeraseBuffer5x      Reagent = "5x Q5 Polymerase Buffer"
	DNTPs2mM                  Reagent = "2mM dNTPs"
	PrimeSTARGXLBuffer5x      Reagent = "10x PrimeSTAR GXL Buffer"
	PrimeSTARDNTPMixture2p5mM Reagent = "2.5mM PrimeSTAR GXL dNTPs"
	Zymo10B                   Reagent = "Zymo 10B competent cells"
	Zymo5A                    Reagent = "Zymo 5A competent cells"
	JM109                     Reagent = "JM109 competent cells"
	DH10B                     Reagent = "DH10B competent cells"
	MC1061                    Reagent = "MC1061 competent cells"
	Ec100DPir116              Reagent = "Ec100D pir116 competent cells"
	Ec100DPirPlus             Reagent = "Ec100D pir+ competent cells"
	LBAgarKan                 Reagent = "LB Agar + Kan Plate"
	LBAgarAmp                 Reagent = "LB Agar + Amp Plate"
	LBAgarCarb                Reagent = "LB Agar + Carb Plate"
	LBAgarSpec                Reagent = "LB Agar + Spec Plate"
	LBAgarCm                  Reagent = "LB Agar + Cm Plate"
	LBAgarNoAB                Reagent = "LB Agar Plate"
	Arabinose10p              Reagent = "10mM Arabinose solution"
	LBSpec                    Reagent = "LB + Spec Broth"
	LBAmp                     Reagent = "LB + Amp Broth"
	LBCarb                    Reagent = "LB + Carb Broth"
	LBKan                     Reagent = "LB + Kan Broth"
	LBCam                     Reagent = "LB + Cam Broth"
	LB                        Reagent = "LB Broth"
)

// Abstract reports whether r stands for step-specific DNA rather than stock.
func (r Reagent) Abstract() bool {
	switch r {
	case ReagentMastermix, ReagentPrimer1, ReagentPrimer2, ReagentTemplate,
		ReagentFrag1, ReagentFrag2, ReagentFrag3, ReagentFrag4, ReagentDNA:
		return true
	default:
		return false
	}
}

// Ingredient is a reagent and its volume in microliters.
type Ingredient struct {
	Reagent Reagent
	Volume  decimal.Decimal
}

// Recipe lists the mastermix and the per-reaction ingredients of a sheet.
type Recipe struct {
	Mastermix []Ingredient
	Reaction  []Ingredient
}

// SheetEntry is a sample a lab sheet retrieves or produces. Fields that do
// not apply to the sheet are left at their zero value.
type SheetEntry struct {
	Location      Location
	Construct     string
	Concentration Concentration
	Clone         string
	Strain        string
	Antibiotics   []string
	Temperature   int
	ProductSize   int
}

// LabSheet is the bench instructions for one kind of operation.
type LabSheet struct {
	Title        string
	Operation    Operation
	Steps        []Step
	Sources      []SheetEntry // samples to retrieve from boxes
	Destinations []SheetEntry // samples to add to boxes
	Program      string       // thermocycler program
	Protocol     string
	Instrument   string
	Notes        []string
	Recipe       *Recipe
}

// LabPacket is the ordered set of sheets of an experiment.
type LabPacket struct {
	Sheets []LabSheet
}
