/*
 * models.go, part of fepele.
 *
 *
 * Copyright 2024 The fepele authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package inout

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	fep "github.com/rmera/fepele"
)

// SplitModel is a trajectory file written for one lambda and direction.
type SplitModel struct {
	Path   string
	Sweep  int
	Lambda float64
	Suffix byte
}

// group is the name, without directory, of the file the model is joined into.
func (M SplitModel) group() string {
	prefix := ""
	if M.Sweep > 0 {
		prefix = strconv.Itoa(M.Sweep) + "_"
	}
	return fep.TrajectoryPrefix + prefix + string(M.Suffix) + fep.TrajectoryExt
}

// SplitModels returns the per-lambda trajectories in dir, i.e. the files
// named with fep.TrajectoryName and a valid tag. They are sorted by sweep,
// suffix and lambda value.
func SplitModels(dir string) ([]SplitModel, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, Error{ErrCantRead + ": " + err.Error(), dir, []string{"os.ReadDir", "SplitModels"}, true}
	}
	ret := make([]SplitModel, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, fep.TrajectoryPrefix) || !strings.HasSuffix(name, fep.TrajectoryExt) {
			continue
		}
		tag := strings.TrimSuffix(strings.TrimPrefix(name, fep.TrajectoryPrefix), fep.TrajectoryExt)
		sweep, value, suffix, err := fep.ParseTag(tag)
		if err != nil {
			continue //not a split model, probably an already joined file.
		}
		ret = append(ret, SplitModel{Path: filepath.Join(dir, name), Sweep: sweep, Lambda: value, Suffix: suffix})
	}
	sort.SliceStable(ret, func(i, j int) bool {
		a, b := ret[i], ret[j]
		if a.Sweep != b.Sweep {
			return a.Sweep < b.Sweep
		}
		if a.Suffix != b.Suffix {
			return a.Suffix < b.Suffix
		}
		return a.Lambda < b.Lambda
	})
	return ret, nil
}

// JoinSplitModels joins the split trajectories in dir into one multi-model
// PDB file per sweep and direction suffix (trajectory_c.pdb, trajectory_f.pdb,
// trajectory_1_b.pdb...), with one model per lambda in increasing order.
// If compress is true the files are zstd-compressed. The split files are
// not removed. It returns the names of the files written.
func JoinSplitModels(dir string, compress bool) ([]string, error) {
	models, err := SplitModels(dir)
	if err != nil {
		return nil, errDecorate(err, "JoinSplitModels")
	}
	groups := make(map[string][]SplitModel)
	order := make([]string, 0)
	for _, m := range models {
		g := m.group()
		if _, ok := groups[g]; !ok {
			order = append(order, g)
		}
		groups[g] = append(groups[g], m)
	}
	written := make([]string, 0, len(order))
	for _, g := range order {
		name, err := joinModels(filepath.Join(dir, g), groups[g], compress)
		if err != nil {
			return written, errDecorate(err, "JoinSplitModels")
		}
		written = append(written, name)
	}
	return written, nil
}

func joinModels(target string, models []SplitModel, compress bool) (string, error) {
	w, name, err := NewWriter(target, compress)
	if err != nil {
		return name, errDecorate(err, "joinModels")
	}
	bw := bufio.NewWriter(w)
	for i, m := range models {
		fmt.Fprintf(bw, "MODEL     %4d\n", i+1)
		if err := copyModel(bw, m.Path); err != nil {
			w.Close()
			return name, errDecorate(err, "joinModels")
		}
		bw.WriteString("ENDMDL\n")
	}
	bw.WriteString("END\n")
	if err := bw.Flush(); err != nil {
		w.Close()
		return name, Error{ErrCantWrite + ": " + err.Error(), name, []string{"bufio.Flush", "joinModels"}, true}
	}
	if err := w.Close(); err != nil {
		return name, Error{ErrCantWrite + ": " + err.Error(), name, []string{"Close", "joinModels"}, true}
	}
	return name, nil
}

// copyModel copies the PDB file to w, without its own MODEL, ENDMDL and END records.
func copyModel(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return Error{ErrCantRead + ": " + err.Error(), path, []string{"os.Open", "copyModel"}, true}
	}
	defer f.Close()
	scan := bufio.NewScanner(f)
	for scan.Scan() {
		line := scan.Text()
		record := strings.TrimSpace(line)
		if strings.HasPrefix(record, "MODEL") || strings.HasPrefix(record, "ENDMDL") || record == "END" {
			continue
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return Error{ErrCantWrite + ": " + err.Error(), path, []string{"io.WriteString", "copyModel"}, true}
		}
	}
	if err := scan.Err(); err != nil {
		return Error{ErrCantRead + ": " + err.Error(), path, []string{"bufio.Scanner", "copyModel"}, true}
	}
	return nil
}

// RemoveSplitModels removes the split trajectories in dir. It returns the
// number of files removed.
func RemoveSplitModels(dir string) (int, error) {
	models, err := SplitModels(dir)
	if err != nil {
		return 0, errDecorate(err, "RemoveSplitModels")
	}
	for i, m := range models {
		if err := os.Remove(m.Path); err != nil {
			return i, Error{ErrCantRemove + ": " + err.Error(), m.Path, []string{"os.Remove", "RemoveSplitModels"}, true}
		}
	}
	return len(models), nil
}
