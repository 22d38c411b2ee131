package streaming

// 64 KiB message payloads sit in grpc's sweet spot; see
// https://github.com/grpc/grpc.github.io/issues/371.
const ChunkSize = 64 * 1024

// Threshold is the payload size past which callers switch from the unary
// RPCs to the chunked streams.
const Threshold = 4 * 1024 * 1024
