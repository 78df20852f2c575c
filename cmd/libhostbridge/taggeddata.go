package main

/*
#include <stdlib.h>
#include "taggeddata.h"

long td_type(const TaggedData* t) { return t->type; }
long td_int(const TaggedData* t) { return t->data.intval; }
double td_float(const TaggedData* t) { return t->data.fltval; }
const char* td_string(const TaggedData* t) { return t->data.string; }

void td_set_undefined(TaggedData* t) { t->type = 0; t->data.intval = 0; }
void td_set_int(TaggedData* t, long type, long v) { t->type = type; t->data.intval = v; }
void td_set_float(TaggedData* t, double v) { t->type = 3; t->data.fltval = v; }
void td_set_string(TaggedData* t, char* s) { t->type = 4; t->data.string = s; }

void* td_alloc(size_t n) { return malloc(n); }
*/
import "C"

import (
	"fmt"
	"unsafe"

	"go.klb.dev/hostbridge/internal/arg"
	"go.klb.dev/hostbridge/internal/errcode"
)

// allocBytes returns n bytes of C heap, or nil when malloc fails.
var allocBytes = func(n int) unsafe.Pointer { return C.td_alloc(C.size_t(n)) }

// readCells copies the host's argument vector into Go cells. String payloads
// are copied, so nothing returned here points into host memory.
func readCells(argv *C.TaggedData, argc C.long) ([]arg.Cell, error) {
	n := int(argc)
	if n < 0 || (argv == nil && n > 0) {
		return nil, errcode.Wrap(errcode.BadArgumentList, "args", fmt.Errorf("argv=%p argc=%d", argv, n))
	}
	if n == 0 {
		return nil, nil
	}
	raw := unsafe.Slice(argv, n)
	cells := make([]arg.Cell, n)
	for i := range raw {
		cells[i] = readCell(&raw[i])
	}
	return cells, nil
}

// readCell reads only the union member the tag names.
func readCell(t *C.TaggedData) arg.Cell {
	c := arg.Cell{Tag: arg.Tag(C.td_type(t))}
	switch c.Tag {
	case arg.TagBool, arg.TagInteger:
		c.Int = int64(C.td_int(t))
	case arg.TagUInteger:
		c.Int = int64(uint64(C.ulong(C.td_int(t))))
	case arg.TagDouble:
		c.Float = float64(C.td_float(t))
	case arg.TagString:
		if p := C.td_string(t); p != nil {
			s := C.GoString(p)
			c.Str = &s
		}
	}
	return c
}

// writeRet stores v in the host's return cell. A string result is copied into
// malloc'd memory the host releases through ESFreeMem.
func writeRet(ret *C.TaggedData, v arg.Value) errcode.Code {
	if ret == nil {
		return errcode.OK
	}
	c := arg.Encode(v)
	switch c.Tag {
	case arg.TagInteger, arg.TagUInteger, arg.TagBool:
		C.td_set_int(ret, C.long(c.Tag), C.long(c.Int))
	case arg.TagDouble:
		C.td_set_float(ret, C.double(c.Float))
	case arg.TagString:
		s, ok := mallocString(*c.Str)
		if !ok {
			C.td_set_undefined(ret)
			return errcode.NoMemory
		}
		C.td_set_string(ret, s)
	default:
		C.td_set_undefined(ret)
	}
	return errcode.OK
}

// mallocString copies s into C memory without cgo's abort-on-failure malloc.
func mallocString(s string) (*C.char, bool) {
	p := allocBytes(len(s) + 1)
	if p == nil {
		return nil, false
	}
	buf := unsafe.Slice((*byte)(p), len(s)+1)
	copy(buf, s)
	buf[len(s)] = 0
	return (*C.char)(p), true
}
