package utils

// NEWTONTOL is the convergence tolerance of local coordinate solves
const NEWTONTOL = 1.e-8
