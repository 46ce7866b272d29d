// spheretool inspects, exports and verifies the procedural sphere mesh.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/sunsphere/internal/engine/sphere"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "obj", "export":
		cmdOBJ(args)
	case "check", "verify":
		cmdCheck(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`spheretool - procedural sphere mesh utility

Usage:
  spheretool <command> [options]

Commands:
  info  [-precision N]               Show vertex, index and triangle counts
  obj   [-precision N] [-o file.obj] Export the mesh as Wavefront OBJ
  check [-precision N] [-tol E]      Verify mesh invariants

Examples:
  spheretool info -precision 48
  spheretool obj -precision 16 -o sun.obj
  spheretool check -precision 300`)
}

func precisionFlag(fs *flag.FlagSet) *int {
	return fs.Int("precision", 48, "Sphere tessellation precision (slices and stacks)")
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	precision := precisionFlag(fs)
	fs.Parse(args)

	mesh := sphere.New(*precision)
	lo, hi := mesh.Bounds()

	fmt.Printf("Precision: %d\n", mesh.Precision())
	fmt.Printf("Vertices:  %d\n", mesh.NumVertices())
	fmt.Printf("Indices:   %d\n", mesh.NumIndices())
	fmt.Printf("Triangles: %d\n", mesh.NumTriangles())
	fmt.Printf("Bounds:    (%.4f, %.4f, %.4f) - (%.4f, %.4f, %.4f)\n", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)

	indexed := mesh.Flatten()
	expanded := mesh.Expand()
	fmt.Println()
	fmt.Println("GPU upload:")
	fmt.Printf("  indexed   %d vertices, %d indices, %d bytes\n",
		indexed.Count(), len(indexed.Indices), uploadBytes(&indexed))
	fmt.Printf("  arrays    %d vertices, %d bytes\n",
		expanded.Count(), uploadBytes(&expanded))
}

func uploadBytes(d *sphere.VertexData) int {
	return 4 * (len(d.Positions) + len(d.TexCoords) + len(d.Normals) + len(d.Indices))
}

func cmdOBJ(args []string) {
	fs := flag.NewFlagSet("obj", flag.ExitOnError)
	precision := precisionFlag(fs)
	output := fs.String("o", "", "Output file (default stdout)")
	name := fs.String("name", "sun", "Object name written to the OBJ file")
	fs.Parse(args)

	mesh := sphere.New(*precision)

	if *output == "" {
		w := bufio.NewWriter(os.Stdout)
		if err := mesh.WriteOBJ(w, *name); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := w.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := mesh.WriteOBJ(f, *name); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Wrote %s (%d vertices, %d triangles)\n", *output, mesh.NumVertices(), mesh.NumTriangles())
}

func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	precision := precisionFlag(fs)
	tol := fs.Float64("tol", sphere.DefaultTolerance, "Floating point tolerance")
	fs.Parse(args)

	mesh := sphere.New(*precision)
	if err := mesh.Check(float32(*tol)); err != nil {
		fmt.Fprintf(os.Stderr, "FAIL precision %d: %v\n", mesh.Precision(), err)
		os.Exit(1)
	}
	fmt.Printf("OK precision %d: %d vertices, %d triangles\n", mesh.Precision(), mesh.NumVertices(), mesh.NumTriangles())
}
