package sample_test

const Skipped = true
