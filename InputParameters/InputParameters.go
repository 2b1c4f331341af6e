package InputParameters

import (
	"errors"
	"fmt"
	"math"

	"github.com/ghodss/yaml"
	"go.uber.org/multierr"
	"gopkg.in/gcfg.v1"
)

var (
	ErrMissingKey   = errors.New("missing required parameter")
	ErrInvalidValue = errors.New("invalid parameter value")
)

// Parameters obtained from the input file, either YAML or an INI file with
// [job], [problem], [hydro] and [mesh] sections. Required values start out
// as NaN (or -1 for counts) so that keys absent from the file can be found.
type InputParametersJet struct {
	Job     JobParameters     `json:"job"`
	Problem ProblemParameters `json:"problem"`
	Hydro   HydroParameters   `json:"hydro"`
	Mesh    MeshParameters    `json:"mesh"`
}

type JobParameters struct {
	Title          string `json:"title"`
	MagneticFields bool   `json:"magneticfields"`
	Adaptive       bool   `json:"adaptive"`
	NGhost         int    `json:"nghost"`
	ProcLimit      int    `json:"proclimit"`
}

type ProblemParameters struct {
	// Ambient medium
	D  float64 `json:"d"`
	P  float64 `json:"p"`
	Vx float64 `json:"vx"`
	Vy float64 `json:"vy"`
	Vz float64 `json:"vz"`
	Bx float64 `json:"bx"`
	By float64 `json:"by"`
	Bz float64 `json:"bz"`
	// Jet, vxjet sets the opening angle and vyjet the rotation at the jet boundary
	Djet  float64 `json:"djet"`
	Pjet  float64 `json:"pjet"`
	Vxjet float64 `json:"vxjet"`
	Vyjet float64 `json:"vyjet"`
	Vzjet float64 `json:"vzjet"`
	Bxjet float64 `json:"bxjet"`
	Byjet float64 `json:"byjet"`
	Bzjet float64 `json:"bzjet"`
	B0    float64 `json:"b0"`
	Z0    float64 `json:"z0"`
	Rjet  float64 `json:"rjet"`
	Drjet float64 `json:"drjet"`
	// Azimuthal perturbation of the jet boundary
	Mang float64 `json:"mang"`
	Dang float64 `json:"dang"`
}

type HydroParameters struct {
	Gamma float64 `json:"gamma"`
}

type MeshParameters struct {
	X1min float64 `json:"x1min"`
	X1max float64 `json:"x1max"`
	X1rat float64 `json:"x1rat"`
	X2min float64 `json:"x2min"`
	X2max float64 `json:"x2max"`
	X3min float64 `json:"x3min"`
	X3max float64 `json:"x3max"`
	Nx1   int     `json:"nx1"`
	Nx2   int     `json:"nx2"`
	Nx3   int     `json:"nx3"`
}

func NewInputParametersJet() (ip *InputParametersJet) {
	var (
		nan = math.NaN()
	)
	ip = &InputParametersJet{
		Job: JobParameters{
			NGhost: 2,
		},
		Problem: ProblemParameters{
			D: nan, P: nan, Vx: nan, Vy: nan, Vz: nan,
			Bx: nan, By: nan, Bz: nan,
			Djet: nan, Pjet: nan, Vxjet: nan, Vyjet: nan, Vzjet: nan,
			Bxjet: nan, Byjet: nan, Bzjet: nan, B0: nan, Z0: nan,
			Rjet: nan, Drjet: nan,
			Mang: nan, Dang: nan,
		},
		Hydro: HydroParameters{
			Gamma: nan,
		},
		Mesh: MeshParameters{
			X1min: nan, X1max: nan, X1rat: 1,
			X2min: 0, X2max: 2 * math.Pi,
			X3min: nan, X3max: nan,
			Nx1: -1, Nx2: 1, Nx3: -1,
		},
	}
	return
}

// Parse reads a YAML input file
func (ip *InputParametersJet) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// ParseINI reads an INI input file, unknown variables are ignored
func (ip *InputParametersJet) ParseINI(data []byte) error {
	return gcfg.FatalOnly(gcfg.ReadStringInto(ip, string(data)))
}

type namedValue struct {
	name string
	val  float64
}

func (ip *InputParametersJet) required() (nv []namedValue) {
	var (
		pr = &ip.Problem
	)
	nv = []namedValue{
		{"problem/d", pr.D}, {"problem/p", pr.P},
		{"problem/vx", pr.Vx}, {"problem/vy", pr.Vy}, {"problem/vz", pr.Vz},
		{"problem/djet", pr.Djet}, {"problem/pjet", pr.Pjet},
		{"problem/vxjet", pr.Vxjet}, {"problem/vyjet", pr.Vyjet}, {"problem/vzjet", pr.Vzjet},
		{"problem/rjet", pr.Rjet}, {"problem/drjet", pr.Drjet},
		{"problem/mang", pr.Mang}, {"problem/dang", pr.Dang},
		{"hydro/gamma", ip.Hydro.Gamma},
		{"mesh/x1min", ip.Mesh.X1min}, {"mesh/x1max", ip.Mesh.X1max},
		{"mesh/x3min", ip.Mesh.X3min}, {"mesh/x3max", ip.Mesh.X3max},
	}
	if ip.Job.MagneticFields {
		nv = append(nv, []namedValue{
			{"problem/bx", pr.Bx}, {"problem/by", pr.By}, {"problem/bz", pr.Bz},
			{"problem/bxjet", pr.Bxjet}, {"problem/byjet", pr.Byjet}, {"problem/bzjet", pr.Bzjet},
			{"problem/b0", pr.B0}, {"problem/z0", pr.Z0},
		}...)
	}
	return
}

// Validate reports every missing or invalid parameter at once. Field values
// that are optional without magnetic fields are zeroed when absent.
func (ip *InputParametersJet) Validate() (err error) {
	for _, nv := range ip.required() {
		switch {
		case math.IsNaN(nv.val):
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrMissingKey, nv.name))
		case math.IsInf(nv.val, 0):
			err = multierr.Append(err, fmt.Errorf("%w: %s is not finite", ErrInvalidValue, nv.name))
		}
	}
	var (
		pr       = &ip.Problem
		positive = []namedValue{
			{"problem/d", pr.D}, {"problem/djet", pr.Djet},
			{"problem/rjet", pr.Rjet}, {"problem/drjet", pr.Drjet},
		}
	)
	for _, nv := range positive {
		if nv.val <= 0 {
			err = multierr.Append(err, fmt.Errorf("%w: %s must be positive, have %g",
				ErrInvalidValue, nv.name, nv.val))
		}
	}
	if ip.Hydro.Gamma <= 1 {
		err = multierr.Append(err, fmt.Errorf("%w: hydro/gamma must be larger than 1, have %g",
			ErrInvalidValue, ip.Hydro.Gamma))
	}
	if pr.P < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: problem/p must not be negative, have %g",
			ErrInvalidValue, pr.P))
	}
	if ip.Mesh.Nx1 < 1 || ip.Mesh.Nx3 < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: mesh/nx1 and mesh/nx3 are required and must be positive, have %d, %d",
			ErrMissingKey, ip.Mesh.Nx1, ip.Mesh.Nx3))
	}
	if ip.Mesh.Nx2 < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: mesh/nx2 must be positive, have %d",
			ErrInvalidValue, ip.Mesh.Nx2))
	}
	if ip.Mesh.X1max <= ip.Mesh.X1min {
		err = multierr.Append(err, fmt.Errorf("%w: mesh/x1max must be larger than mesh/x1min",
			ErrInvalidValue))
	}
	if ip.Mesh.X1rat <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: mesh/x1rat must be positive, have %g",
			ErrInvalidValue, ip.Mesh.X1rat))
	}
	if ip.Job.NGhost < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: job/nghost must be positive, have %d",
			ErrInvalidValue, ip.Job.NGhost))
	}
	if !ip.Job.MagneticFields {
		for _, f := range []*float64{&pr.Bx, &pr.By, &pr.Bz, &pr.Bxjet, &pr.Byjet, &pr.Bzjet, &pr.B0, &pr.Z0} {
			if math.IsNaN(*f) {
				*f = 0
			}
		}
	}
	return
}

func (ip *InputParametersJet) Print() {
	var (
		pr = &ip.Problem
	)
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Job.Title)
	fmt.Printf("[%v]\t\t\t= Magnetic Fields\n", ip.Job.MagneticFields)
	fmt.Printf("[%v]\t\t\t= Adaptive\n", ip.Job.Adaptive)
	fmt.Printf("%8.5f\t\t= Gamma\n", ip.Hydro.Gamma)
	fmt.Printf("Ambient: d, p = %8.5f, %8.5f v = [%8.5f, %8.5f, %8.5f] B = [%8.5f, %8.5f, %8.5f]\n",
		pr.D, pr.P, pr.Vx, pr.Vy, pr.Vz, pr.Bx, pr.By, pr.Bz)
	fmt.Printf("Jet:     d, p = %8.5f, %8.5f v = [%8.5f, %8.5f, %8.5f] B = [%8.5f, %8.5f, %8.5f]\n",
		pr.Djet, pr.Pjet, pr.Vxjet, pr.Vyjet, pr.Vzjet, pr.Bxjet, pr.Byjet, pr.Bzjet)
	fmt.Printf("rjet, drjet = %8.5f, %8.5f b0, z0 = %8.5f, %8.5f\n", pr.Rjet, pr.Drjet, pr.B0, pr.Z0)
	fmt.Printf("Perturbation mode, amplitude = %8.5f, %8.5f\n", pr.Mang, pr.Dang)
	fmt.Printf("Mesh: r = [%8.5f, %8.5f] x1rat = %8.5f z = [%8.5f, %8.5f] cells = %d x %d x %d\n",
		ip.Mesh.X1min, ip.Mesh.X1max, ip.Mesh.X1rat, ip.Mesh.X3min, ip.Mesh.X3max,
		ip.Mesh.Nx1, ip.Mesh.Nx2, ip.Mesh.Nx3)
}

const (
	ExampleYAMLFile = `
########################################
job:
  title: "Rotating magnetized jet"
  magneticfields: true
  adaptive: true
  nghost: 2
hydro:
  gamma: 1.3333333333
mesh:
  x1min: 0.0
  x1max: 10.0
  x1rat: 1.0
  x3min: 0.0
  x3max: 40.0
  nx1: 64
  nx2: 1
  nx3: 256
problem:
  d: 1.0
  p: 0.01
  vx: 0.0
  vy: 0.0
  vz: 0.0
  bx: 0.0
  by: 0.0
  bz: 0.0
  djet: 0.1
  pjet: 0.01
  vxjet: 0.1   # opening, tan = vxjet/vzjet
  vyjet: 0.5   # rotation four velocity at the jet boundary
  vzjet: 5.0
  bxjet: 0.0
  byjet: 0.0
  bzjet: 0.0
  b0: 0.5
  z0: 10.0
  rjet: 1.0
  drjet: 0.1
  mang: 4
  dang: 0.05
########################################
`
	ExampleINIFile = `
[job]
title = Rotating magnetized jet
magneticfields = true
adaptive = true

[hydro]
gamma = 1.3333333333

[mesh]
x1min = 0.0
x1max = 10.0
x3min = 0.0
x3max = 40.0
nx1 = 64
nx3 = 256

[problem]
d = 1.0
p = 0.01
vx = 0.0
vy = 0.0
vz = 0.0
bx = 0.0
by = 0.0
bz = 0.0
djet = 0.1
pjet = 0.01
vxjet = 0.1
vyjet = 0.5
vzjet = 5.0
bxjet = 0.0
byjet = 0.0
bzjet = 0.0
b0 = 0.5
z0 = 10.0
rjet = 1.0
drjet = 0.1
mang = 4
dang = 0.05
`
)
