package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WriteOBJ writes every placed instance as a Wavefront object group,
// with vertices baked through the instance transform. mtlName is the
// material library referenced from the header; empty skips the mtllib
// statement.
func (s *Scene) WriteOBJ(w io.Writer, mtlName string) error {
	bw := bufio.NewWriter(w)

	if mtlName != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtlName)
	}

	offset := 1
	for i, inst := range s.Instances {
		def := s.defs[inst.Definition]
		m := def.Mesh

		fmt.Fprintf(bw, "o %s_%d\n", sanitizeObjName(def.Name), i)
		fmt.Fprintf(bw, "usemtl %s\n", materialName(inst.ColorCode))

		for _, v := range m.Vertices {
			p := inst.Transform.TransformPoint(v)
			fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
		}
		for _, n := range m.Normals {
			d := inst.Transform.TransformDirection(n).Normalize()
			fmt.Fprintf(bw, "vn %g %g %g\n", d.X, d.Y, d.Z)
		}
		for _, f := range m.Faces {
			bw.WriteString("f")
			for k := 0; k < f.N; k++ {
				idx := f.V[k] + offset
				fmt.Fprintf(bw, " %d//%d", idx, idx)
			}
			bw.WriteString("\n")
		}
		offset += len(m.Vertices)
	}

	return bw.Flush()
}

// WriteMTL writes the memoized materials as a Wavefront material
// library.
func (s *Scene) WriteMTL(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, code := range s.materialCodes() {
		m := s.materials[code]
		fmt.Fprintf(bw, "newmtl %s\n", materialName(code))
		fmt.Fprintf(bw, "Kd %g %g %g\n", m.R, m.G, m.B)
		spec := 0.04 + 0.96*m.Metallic
		fmt.Fprintf(bw, "Ks %g %g %g\n", spec, spec, spec)
		fmt.Fprintf(bw, "Ns %g\n", (1.0-m.Roughness)*900.0+100.0)
		fmt.Fprintf(bw, "d %g\n", m.Opacity)
		bw.WriteString("illum 2\n\n")
	}

	return bw.Flush()
}

// Export writes <path> and a sibling .mtl with the same base name.
func (s *Scene) Export(path string) error {
	mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"

	objFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer objFile.Close()

	if err := s.WriteOBJ(objFile, filepath.Base(mtlPath)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	mtlFile, err := os.Create(mtlPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", mtlPath, err)
	}
	defer mtlFile.Close()

	if err := s.WriteMTL(mtlFile); err != nil {
		return fmt.Errorf("writing %s: %w", mtlPath, err)
	}
	return nil
}

func (s *Scene) materialCodes() []string {
	codes := make([]string, 0, len(s.materials))
	for code := range s.materials {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func materialName(code string) string {
	return "ldraw_" + code
}

func sanitizeObjName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return '_'
		}
		return r
	}, name)
}
