package mix

// numSamples is the number of 10 nm bands from 380 nm to 750 nm.
const numSamples = 38

// Reflectance basis curves. Each curve integrates, under D65 and the CIE
// 1931 2° observer, to exactly its sRGB primary or secondary; a linear-light
// colour decomposed into these seven curves therefore reconstructs itself.
var (
	basisWhite = [numSamples]float64{
		1, 1, 1, 1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 1,
	}
	basisCyan = [numSamples]float64{
		0.999904, 0.999675, 0.998346, 0.994476, 0.982847, 0.968336, 0.959184, 0.968456,
		0.993606, 1, 1, 1, 1, 1, 1, 1,
		1, 1, 1, 0.99841, 0.756676, 0.487396, 0.264376, 0.109773,
		0.026221, 0.005, 0.005, 0.005, 0.005, 0.005, 0.005, 0.005,
		0.005, 0.005, 0.005, 0.005, 0.005, 0.005,
	}
	basisMagenta = [numSamples]float64{
		0.999886, 1, 1, 1, 1, 1, 1, 1,
		1, 0.892863, 0.695849, 0.471795, 0.250901, 0.059835, 0.005, 0.005,
		0.005, 0.005, 0.005, 0.115049, 0.314034, 0.539117, 0.730397, 0.865386,
		0.943041, 0.979736, 0.995809, 1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 1,
	}
	basisYellow = [numSamples]float64{
		0.005, 0.005, 0.005, 0.005, 0.005, 0.005, 0.005, 0.005,
		0.060569, 0.165827, 0.320002, 0.506872, 0.691865, 0.841749, 0.941411, 0.997651,
		1, 1, 1, 1, 0.995361, 0.982574, 0.972531, 0.968557,
		0.97091, 0.978, 0.984023, 0.990122, 0.994173, 0.996813, 0.998371, 0.999294,
		0.999637, 0.999808, 0.99992, 0.999955, 0.999977, 0.999991,
	}
	basisRed = [numSamples]float64{
		0.005, 0.005, 0.005, 0.005902, 0.018164, 0.032682, 0.039508, 0.024444,
		0.005, 0.005, 0.005, 0.005, 0.005, 0.005, 0.005, 0.005,
		0.005, 0.005, 0.005, 0.005, 0.190754, 0.482069, 0.741513, 0.92642,
		1, 1, 1, 1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 1,
	}
	basisGreen = [numSamples]float64{
		0.005, 0.005, 0.005, 0.005, 0.005, 0.005, 0.005, 0.005,
		0.005, 0.091858, 0.29311, 0.520472, 0.741848, 0.932003, 1, 1,
		1, 1, 1, 0.878123, 0.680944, 0.457978, 0.268189, 0.134276,
		0.057176, 0.020632, 0.005, 0.005, 0.005, 0.005, 0.005, 0.005,
		0.005, 0.005, 0.005, 0.005, 0.005, 0.005,
	}
	basisBlue = [numSamples]float64{
		0.999698, 0.9995, 0.999869, 1, 1, 1, 1, 0.994439,
		0.936599, 0.831216, 0.676709, 0.489377, 0.302902, 0.150699, 0.048694, 0.005,
		0.005, 0.005, 0.005, 0.005, 0.005, 0.012066, 0.02369, 0.02901,
		0.027624, 0.021194, 0.015523, 0.009643, 0.005704, 0.005, 0.005, 0.005,
		0.005, 0.005, 0.005, 0.005, 0.005, 0.005,
	})

// CIE 1931 2° standard observer colour-matching functions (x̄, ȳ, z̄) and the
// CIE D65 relative spectral power distribution, sampled at 380, 390, ... 750 nm.
var (
	cmf = [numSamples][3]float64{
		{0.001368, 0.000039, 0.00645}, {0.004243, 0.00012, 0.02005}, {0.01431, 0.000396, 0.06785},
		{0.04351, 0.00121, 0.2074}, {0.13438, 0.004, 0.6456}, {0.2839, 0.0116, 1.3856},
		{0.34828, 0.023, 1.74706}, {0.3362, 0.038, 1.77211}, {0.2908, 0.06, 1.6692},
		{0.19536, 0.09098, 1.28764}, {0.09564, 0.13902, 0.81295}, {0.03201, 0.20802, 0.46518},
		{0.0049, 0.323, 0.272}, {0.0093, 0.503, 0.1582}, {0.06327, 0.71, 0.07825},
		{0.1655, 0.862, 0.04216}, {0.2904, 0.954, 0.0203}, {0.43345, 0.99495, 0.00875},
		{0.5945, 0.995, 0.0039}, {0.7621, 0.952, 0.0021}, {0.9163, 0.87, 0.00165},
		{1.0263, 0.757, 0.0011}, {1.0622, 0.631, 0.0008}, {1.0026, 0.503, 0.00034},
		{0.85445, 0.381, 0.00019}, {0.6424, 0.265, 0.00005}, {0.4479, 0.175, 0.00002},
		{0.2835, 0.107, 0}, {0.1649, 0.061, 0}, {0.0874, 0.032, 0},
		{0.04677, 0.017, 0}, {0.0227, 0.00821, 0}, {0.011359, 0.004102, 0},
		{0.00579, 0.002091, 0}, {0.002899, 0.001047, 0}, {0.00144, 0.00052, 0},
		{0.00069, 0.000249, 0}, {0.000332, 0.00012, 0},
	}
	d65 = [numSamples]float64{
		49.9755, 54.6482, 82.7549, 91.486, 93.4318, 86.6823, 104.865, 117.008,
		117.812, 114.861, 115.923, 108.811, 109.354, 107.802, 104.79, 107.689,
		104.405, 104.046, 100, 96.3342, 95.788, 88.6856, 90.0062, 89.5991,
		87.6987, 83.2886, 83.6992, 80.0268, 80.2146, 82.2778, 78.2842, 69.7213,
		71.6091, 74.349, 61.604, 69.8856, 75.087, 63.5927,
	}
)
