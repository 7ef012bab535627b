// Package paspale draws publication ready charts for papers: grouped and
// stacked bars, lines, dual y-axis combinations and kernel density
// estimates.
//
//
// Configuration
//
// All display options live in two plain structs, PlotConfig for the
// bar, stacked bar, line and dual-axis plots and KDEConfig for density
// plots. Start from DefaultPlotConfig or DefaultKDEConfig and change
// what you need; fields left at their zero value are filled with the
// defaults when the plot is rendered.
//
//
// Data
//
// Data is read from CSV files with a header row. For bar and stacked
// bar plots the first column holds the group labels, for line plots it
// holds the x values. All remaining columns are data series:
//      label,method1,method2,method3
//      gemm,1.0,1.8,2.4
//      spmv,1.0,1.2,3.1
// For density plots every column is one distribution.
//
//
// Rendering
//
// Each plot type implements Plotter. Render runs the common lifecycle:
// create the figure, Draw, apply the shared styling (labels, limits,
// ticks, log scale, legend), Customize and save. The file format
// follows the extension of the output path; the file is written to a
// temporary name first and renamed when complete.
//
//    p := paspale.NewBarPlotter(paspale.PlotConfig{
//        Output: "figures/speedup.pdf",
//        YLabel: "Speedup",
//        Legend: []string{"Baseline", "Method A", "Method B"},
//    })
//    if err := p.LoadCSV("speedup.csv"); err != nil {
//        return err
//    }
//    _, err := p.Plot()
//
package paspale
