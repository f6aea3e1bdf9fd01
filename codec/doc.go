// Package codec assembles the quantization, bit packing, redundancy and
// grid mapping layers into complete pipelines.
//
// Three pipelines share one validated Config:
//
//   - Encoder: payload bytes, redundancy appended, expanded to bits,
//     packed into symbols, laid out on a planned grid.
//   - Decoder: grid symbols extracted, filler skipped, bits regrouped
//     into bytes, redundancy verified and best-effort corrected, payload
//     type sniffed.
//   - Corrector: every data channel snapped back onto its interval
//     anchor, filler regions normalized to pure zero, without touching
//     the payload interpretation at all.
//
// All pipelines are pure functions of their inputs and the immutable
// Config, so one Encoder, Decoder or Corrector is safe for concurrent
// use on independent inputs.
package codec
