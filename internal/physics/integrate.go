package physics

import "github.com/san-kum/collisim/internal/dynamo"

func Integrate(v dynamo.View, dt float64) {
	for i := range v.Pos {
		v.Pos[i] = v.Pos[i].Add(v.Vel[i].Mul(dt))
	}
}
