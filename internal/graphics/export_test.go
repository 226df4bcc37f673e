package graphics

// NewReloaderFS builds from fsys while watching dir.
var NewReloaderFS = newReloader
