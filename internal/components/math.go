package components

import "math"

func sinf(x float32) float32 { return float32(math.Sin(float64(x))) }

func cosf(x float32) float32 { return float32(math.Cos(float64(x))) }

func expf(x float32) float32 { return float32(math.Exp(float64(x))) }

func atan2f(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }

func fmodf(x, y float32) float32 { return float32(math.Mod(float64(x), float64(y))) }

func finitef(x float32) bool { return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0) }
