package main

/*
#include <stdlib.h>
#include "taggeddata.h"
*/
import "C"

import (
	"unsafe"

	"go.klb.dev/hostbridge/internal/arg"
)

// hostCells is a TaggedData vector in C memory, laid out the way the host
// passes arguments and return cells. It lets Go code drive the exported
// entry points without a host.
type hostCells struct {
	base    *C.TaggedData
	n       int
	strings []*C.char
}

// newHostCells allocates n zeroed (undefined) cells. With n == 0 argv is NULL.
func newHostCells(n int) *hostCells {
	h := &hostCells{n: n}
	if n > 0 {
		h.base = (*C.TaggedData)(C.calloc(C.size_t(n), C.size_t(unsafe.Sizeof(C.TaggedData{}))))
	}
	return h
}

func (h *hostCells) at(i int) *C.TaggedData { return &unsafe.Slice(h.base, h.n)[i] }

func (h *hostCells) argv() *C.TaggedData { return h.base }

func (h *hostCells) argc() C.long { return C.long(h.n) }

func (h *hostCells) setInt(i int, tag arg.Tag, v int64) {
	C.td_set_int(h.at(i), C.long(tag), C.long(v))
}

func (h *hostCells) setFloat(i int, v float64) { C.td_set_float(h.at(i), C.double(v)) }

func (h *hostCells) setString(i int, s string) {
	p := C.CString(s)
	h.strings = append(h.strings, p)
	C.td_set_string(h.at(i), p)
}

func (h *hostCells) setNullString(i int) { C.td_set_string(h.at(i), nil) }

// cell reads cell i back through the same tag-checked path as readCells.
func (h *hostCells) cell(i int) arg.Cell { return readCell(h.at(i)) }

// stringData returns the payload pointer of string cell i.
func (h *hostCells) stringData(i int) unsafe.Pointer {
	return unsafe.Pointer(C.td_string(h.at(i)))
}

// free releases the vector and the strings set through setString. Strings
// the bridge returned belong to ESFreeMem.
func (h *hostCells) free() {
	for _, p := range h.strings {
		C.free(unsafe.Pointer(p))
	}
	h.strings = nil
	if h.base != nil {
		C.free(unsafe.Pointer(h.base))
		h.base = nil
	}
}
