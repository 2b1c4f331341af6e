/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/srjet/InputParameters"
	"github.com/notargets/srjet/mesh"
	"github.com/notargets/srjet/model_problems/SRJet"
	"github.com/notargets/srjet/types"
	"github.com/notargets/srjet/utils"
)

type ModelJet struct {
	InputFile string
	Example   bool
	Profile   string
	Verbose   bool
	ProcLimit int
}

// JetCmd represents the jet command
var JetCmd = &cobra.Command{
	Use:   "jet",
	Short: "Fill the inner x3 ghost zones of one block with the jet inflow",
	Long: `Reads the problem, hydro and mesh parameters, initializes a single block with
the ambient medium, fills the ghost zones below the lower axial boundary with the
jet inflow and reports the ghost layer profile, the refinement flag and the
numerical fallbacks taken.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		mj := &ModelJet{}
		if mj.InputFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		mj.Example, _ = cmd.Flags().GetBool("example")
		mj.Profile, _ = cmd.Flags().GetString("profile")
		mj.Verbose = viper.GetBool("verbose")
		mj.ProcLimit = viper.GetInt("procLimit")
		if mj.Example {
			fmt.Printf("Example YAML File:%s\n", InputParameters.ExampleYAMLFile)
			fmt.Printf("Example INI File:%s\n", InputParameters.ExampleINIFile)
			return
		}
		switch mj.Profile {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		default:
			return fmt.Errorf("unknown profile type %q, use cpu or mem", mj.Profile)
		}
		var (
			ip *InputParameters.InputParametersJet
		)
		if ip, err = processInput(mj); err != nil {
			return
		}
		level := slog.LevelInfo
		if mj.Verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		_, err = RunJet(ip, mj.ProcLimit, logger, os.Stdout)
		return
	},
}

func init() {
	rootCmd.AddCommand(JetCmd)
	JetCmd.Flags().StringP("inputConditionsFile", "I", "",
		"YAML (.yaml, .yml) or INI (.ini, .cfg) file with [job], [problem], [hydro] and [mesh] parameters")
	JetCmd.Flags().BoolP("example", "e", false, "print example input files and exit")
	JetCmd.Flags().String("profile", "", "write a cpu or mem profile to the current directory")
}

func processInput(mj *ModelJet) (ip *InputParameters.InputParametersJet, err error) {
	if len(mj.InputFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile), use --example for a template")
		return
	}
	var (
		data []byte
	)
	if data, err = os.ReadFile(mj.InputFile); err != nil {
		return
	}
	ip = InputParameters.NewInputParametersJet()
	switch strings.ToLower(filepath.Ext(mj.InputFile)) {
	case ".ini", ".cfg":
		err = ip.ParseINI(data)
	default:
		err = ip.Parse(data)
	}
	if err != nil {
		err = fmt.Errorf("reading %s: %w", mj.InputFile, err)
		return
	}
	if mj.ProcLimit == 0 {
		mj.ProcLimit = ip.Job.ProcLimit
	}
	return
}

type JetSummary struct {
	Flag        types.RefineFlag
	MaxSigma    float64
	Diagnostics string
}

// RunJet initializes one block, applies the inner x3 jet boundary and writes
// a report to out
func RunJet(ip *InputParameters.InputParametersJet, ProcLimit int, logger *slog.Logger,
	out io.Writer) (js JetSummary, err error) {
	var (
		pp  SRJet.PhysicalParameters
		blk *mesh.Block
	)
	if pp, err = SRJet.NewPhysicalParameters(ip); err != nil {
		return
	}
	if blk, err = mesh.NewBlock(pp.RegionSize(ip), ip.Job.NGhost); err != nil {
		return
	}
	jet := SRJet.NewJet(pp, ProcLimit, logger)
	w, b, bc := jet.ProblemGenerator(blk)
	bf, ok := jet.BoundaryFunctions()[types.InnerX3]
	if !ok {
		err = fmt.Errorf("no boundary function for %s", types.InnerX3)
		return
	}
	il, iu, jl, ju, kl, ku, ngh := blk.InnerX3Range()
	bf(blk, w, b, 0, 0, il, iu, jl, ju, kl, ku, ngh)
	if pp.MagneticFieldsEnabled {
		mesh.CalculateCellCenteredField(b, bc, il, iu, jl, ju, kl-ngh, kl-1)
	}
	if utils.IsNan(w[:]) {
		logger.Warn("ghost zone primitives contain NaN")
	}
	logger.Debug("boundary fill done", "memory", utils.GetMemUsage())
	js.Flag, js.MaxSigma = jet.RefinementCondition(blk, w, bc)
	js.Diagnostics = jet.Diag.String()

	fmt.Fprintf(out, "%s\n", ip.Job.Title)
	jet.Print()
	printGhostLayer(out, blk, w, bc, kl-1)
	fmt.Fprintf(out, "Refinement: %s, max sigma = %8.5f\n", js.Flag, js.MaxSigma)
	fmt.Fprintf(out, "Fallbacks: %s\n", js.Diagnostics)
	if n := jet.Diag.Total(); n > 0 {
		logger.Warn("boundary fill used numerical fallbacks", "count", n)
	}
	return
}

func printGhostLayer(out io.Writer, blk *mesh.Block, w mesh.Primitives, bc mesh.CellField, k int) {
	var (
		j      = blk.Js
		stride = (blk.Ie - blk.Is + 1) / 16
	)
	if stride < 1 {
		stride = 1
	}
	rho := w[types.IDN].Slab(k).Slice(blk.Js, blk.Je+1, blk.Is, blk.Ie+1)
	fmt.Fprintf(out, "Ghost layer z = %8.5f, rho range = [%10.5e, %10.5e]\n",
		blk.X3v(k), mat.Min(rho), mat.Max(rho))
	fmt.Fprintf(out, "%10s", "r")
	for _, name := range types.PrimitiveNames {
		fmt.Fprintf(out, "%12s", name)
	}
	fmt.Fprintf(out, "%12s%12s\n", "Bcc1", "Bcc3")
	for i := blk.Is; i <= blk.Ie; i += stride {
		fmt.Fprintf(out, "%10.5f", blk.X1v(i))
		for n := range w {
			fmt.Fprintf(out, "%12.5e", w[n].At(k, j, i))
		}
		fmt.Fprintf(out, "%12.5e%12.5e\n", bc[types.IB1].At(k, j, i), bc[types.IB3].At(k, j, i))
	}
}
