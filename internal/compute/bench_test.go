package compute

import (
	"testing"

	"github.com/san-kum/collisim/internal/dynamo"
)

func benchmarkBackend(b *testing.B, backend Backend) {
	s := randomSet(2000, 42)
	p := dynamo.DefaultParams()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		backend.Step(s, p, 0.016)
	}
}

func BenchmarkSerial(b *testing.B) { benchmarkBackend(b, NewSerialBackend()) }
func BenchmarkCPU2(b *testing.B)   { benchmarkBackend(b, NewCPUBackendN(2)) }
func BenchmarkCPU4(b *testing.B)   { benchmarkBackend(b, NewCPUBackendN(4)) }
func BenchmarkCPUAll(b *testing.B) { benchmarkBackend(b, NewCPUBackend()) }
