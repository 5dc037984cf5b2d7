// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dimexpr

import (
	"encoding/binary"
	"hash/fnv"
)

// Hash returns a hash of an expression consistent with Equal:
// two structurally equal expressions have the same hash.
// The hash is deterministic across runs.
func Hash(x DimExpr) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	write := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	if x == nil {
		write(uint64(InvalidKind))
		return h.Sum64()
	}
	write(uint64(x.Kind()))
	switch xT := x.(type) {
	case Constant:
		write(uint64(xT))
	case Symbol:
		write(uint64(len(xT)))
		h.Write([]byte(xT))
	default:
		for _, op := range Operands(x) {
			write(Hash(op))
		}
	}
	return h.Sum64()
}
