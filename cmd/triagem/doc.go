// Command triagem is the command-line front end for the screening pipeline.
//
// `triagem analyze VIDEO` runs both analyses and writes analysis_report.*,
// audio_analysis_report.* and RELATORIO_FINAL_INTEGRADO.* into the output
// directory; `video` and `audio` run one stage each. The history, config and
// status subcommands inspect previous runs and the local setup.
package main
