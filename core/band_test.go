package core_test

// bandForHz is unexported; exercised indirectly through Analyse/Encode in
// encoder_test.go and analyser_test.go (invariant 9's frequency-range
// check walks every emitted peak's band assignment end to end).
